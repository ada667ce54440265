package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/augi/luxtronik2mqtt/internal/config"
	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	HADISCOVERY_ACTOR_ID = "hadiscovery"
)

// RepublishDiscovery re-runs the discovery flow. Entity visibility
// follows device display flags, so a periodic republish picks up panels
// enabled on the controller after startup.
type RepublishDiscovery struct {
}

type HADiscoveryActor struct {
	config               *config.Config
	behavior             actor.Behavior
	stash                *actorutil.Stash
	heatpumpActor        *actor.PID
	mqttActor            *actor.PID
	heatpumpActorHealthy bool
	mqttActorHealthy     bool
	healthyRecv          int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, heatpumpActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:        config,
		heatpumpActor: heatpumpActor,
		mqttActor:     mqttActor,
		behavior:      actor.NewBehavior(),
		stash:         &actorutil.Stash{},
		logger:        actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")
		state.runHealthCheck(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) runHealthCheck(ctx actor.Context) {
	// Check heatpump and MQTT actor healthy
	state.healthyRecv = 0
	state.heatpumpActorHealthy = false
	state.mqttActorHealthy = false
	// Heatpump Actor Request
	actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.heatpumpActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
		return domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_HEATPUMP,
			Healthy: false,
		}
	})
	// MQTT Actor Request
	actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
		return domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MQTT,
			Healthy: false,
		}
	})
	state.behavior.Become(state.WaitingHealthyReceive)
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_HEATPUMP:
				state.heatpumpActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.mqttActorHealthy = true
			}
		}
		if state.healthyRecv == 2 {

			if state.heatpumpActorHealthy && state.mqttActorHealthy {
				// Ask heatpump GetControllerInfoRequest
				actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.heatpumpActor, domain.GetControllerInfoRequest{}, 10*time.Second), func(err error) any {
					return domain.GetControllerInfoResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.behavior.Become(state.WaitingInfoReceive)
				state.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or Heatpump Actor are not healthy"))
			}
		}
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {
	switch ctx.Message().(type) {
	case RepublishDiscovery:
		state.logger.Debug("hadiscovery@done republish")
		state.runHealthCheck(ctx)
	}
}

func (state *HADiscoveryActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetControllerInfoResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Debug("hadiscovery@info: GetControllerInfoResponse", zap.Any("response", msg))

		var sensors []domain.GenericSensor
		var switches []domain.GenericSwitch
		var inputNumbers []domain.GenericInputNumber

		bridgeDevice := domain.BridgeDevice(state.config.MQTT.BaseTopic)
		bridgeSensors := domain.BridgeSensors(bridgeDevice)
		sensors = append(sensors, bridgeSensors...)

		heatpumpDevice := domain.HeatpumpDevice(msg.Info)
		heatpumpDevice.ViaDevice = bridgeDevice.Id
		sensors = append(sensors, domain.HeatpumpSensors(heatpumpDevice, msg.Visibilities)...)
		switches = append(switches, domain.HeatpumpSwitches(heatpumpDevice)...)
		inputNumbers = append(inputNumbers, domain.HeatpumpInputNumbers(heatpumpDevice)...)

		ctx.Send(state.mqttActor, domain.PublishDiscoveryRequest{
			Sensors:      sensors,
			Switches:     switches,
			InputNumbers: inputNumbers,
		})
		state.behavior.Become(state.Done)

	default:
		state.logger.Debug("hadiscovery@info: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}
