package actor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	adactor "github.com/augi/luxtronik2mqtt/internal/adapter/actor"
	"github.com/augi/luxtronik2mqtt/internal/config"
	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	. "github.com/augi/luxtronik2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

// discoveryRepublishCron re-runs HA discovery nightly to pick up panels
// enabled on the controller after startup.
const discoveryRepublishCron = "0 0 3 * * *"

type MQTTActorProvider func(*eventstream.EventStream) *adactor.MQTTActor

type HeatpumpActorProvider func() *adactor.HeatpumpActor

type MasterOfPuppetsActor struct {
	config   config.Config
	behavior actor.Behavior
	stash    *Stash

	currentHealthCheck    healthCheckResult
	eventStream           *eventstream.EventStream
	heatpumpActor         *actor.PID
	mqttActor             *actor.PID
	pollerActor           *actor.PID
	haDiscoveryActor      *actor.PID
	cronScheduler         quartz.Scheduler
	heatpumpActorProvider HeatpumpActorProvider
	mqttActorProvider     MQTTActorProvider
	logger                *zap.Logger
}

type healthCheckResult struct {
	heatpumpActorHealthy bool
	mqttActorHealthy     bool
	pollerActorHealthy   bool
	checksReceived       int
	respondTo            *actor.PID
}

func NewMasterOfPuppetsActor(config config.Config, heatpumpActorProvider HeatpumpActorProvider, mqttActorProvider MQTTActorProvider, logger *zap.Logger) *MasterOfPuppetsActor {
	act := &MasterOfPuppetsActor{
		config:                config,
		behavior:              actor.NewBehavior(),
		stash:                 &Stash{},
		logger:                ActorLogger("master", logger),
		eventStream:           &eventstream.EventStream{},
		heatpumpActorProvider: heatpumpActorProvider,
		mqttActorProvider:     mqttActorProvider,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MasterOfPuppetsActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MasterOfPuppetsActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("master@starting started")

		state.currentHealthCheck = healthCheckResult{}
		state.currentHealthCheck.reset()

		// start heatpump child
		heatpumpActorPID, err := state.startHeatpumpActor(ctx)
		if err != nil {
			panic(err)
		}
		state.heatpumpActor = heatpumpActorPID

		// start MQTT child
		mqttActorPID, err := state.startMQTTActor(ctx)
		if err != nil {
			panic(err)
		}
		state.mqttActor = mqttActorPID

		// start poller child
		pollerActorPID, err := state.startPollerActor(ctx)
		if err != nil {
			panic(err)
		}
		state.pollerActor = pollerActorPID

		// start HA Discovery
		if state.config.MQTT.HADiscoveryEnable {
			haDiscPID, err := state.startHADiscoveryActor(ctx)
			if err != nil {
				panic(err)
			}
			state.haDiscoveryActor = haDiscPID
			state.startDiscoveryRepublishJob(ctx)
		}

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("master@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("master@default ActorHealthRequest")
		state.currentHealthCheck.reset()
		state.currentHealthCheck.respondTo = ctx.Sender()
		// Heatpump Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.heatpumpActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_HEATPUMP,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		// Poller Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.pollerActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_POLLER,
				Healthy: false,
			}
		})

		ctx.SetReceiveTimeout(1 * time.Second)

		state.behavior.BecomeStacked(state.HealthCheckReceive)
	case domain.GetValueRequest:
		// snapshot read, served by the heatpump child
		state.logger.Debug("master@default GetValueRequest", zap.String("id", msg.ID))
		ctx.Forward(state.heatpumpActor)
	case domain.WriteParameterRequest:
		state.logger.Debug("master@default WriteParameterRequest", zap.String("parameter", msg.Parameter))
		ctx.Forward(state.heatpumpActor)
	case adactor.ParsedCommand:
		// redirect parsedCommand to actor
		state.logger.Debug("master@default parsedCommand", zap.Any("command", msg.Command))
		if msg.Command != nil {
			cmd, err := ParsedMQTTCommandToCommand(*msg.Command)
			if err == nil && cmd != nil {
				switch pcmd := cmd.(type) {
				case domain.WriteParameterRequest:
					ctx.Send(state.heatpumpActor, pcmd)
				}
			}
		}
	case *actor.Terminated:
		// if some actor fails on boot, terminate
		if msg.Who.Id == fmt.Sprintf("%s/%s", domain.ACTOR_ID_MASTER, domain.ACTOR_ID_HEATPUMP) {
			state.logger.Error("master@default heatpump error")
			panic(errors.New("heatpump terminated"))
		}
	case *actor.Stopping:
		if state.cronScheduler != nil {
			state.cronScheduler.Stop()
		}
	default:
		state.logger.Debug("master@default stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) HealthCheckReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.ReceiveTimeout:
		// if some actor does not respond to healthCheck, assume not healthy
		state.currentHealthCheck.respond(ctx)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case domain.ActorHealthResponse:
		state.logger.Debug("master@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.currentHealthCheck.checksReceived++
		if msg.Healthy {
			if msg.Id == domain.ACTOR_ID_HEATPUMP {
				state.currentHealthCheck.heatpumpActorHealthy = true
			} else if msg.Id == domain.ACTOR_ID_MQTT {
				state.currentHealthCheck.mqttActorHealthy = true
			} else if msg.Id == domain.ACTOR_ID_POLLER {
				state.currentHealthCheck.pollerActorHealthy = true
			}
		}
		if state.currentHealthCheck.allReceived() {

			state.currentHealthCheck.respond(ctx)

			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
		} else {
			ctx.SetReceiveTimeout(1 * time.Second)
		}
	default:
		state.logger.Debug("master@healthcheck stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) startHeatpumpActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	heatpumpProps := actor.PropsFromProducer(func() actor.Actor {
		return state.heatpumpActorProvider()
	}, actor.WithSupervisor(supervisor))
	heatpumpActorPID, err := ctx.SpawnNamed(heatpumpProps, domain.ACTOR_ID_HEATPUMP)
	if err != nil {
		return nil, err
	}

	return heatpumpActorPID, nil
}

func (state *MasterOfPuppetsActor) startPollerActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewAllForOneStrategy(1, 10*time.Second, decider)

	pollerProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&state.config, state.heatpumpActor, state.eventStream, state.logger)
	}, actor.WithSupervisor(supervisor))
	pollerActorPID, err := ctx.SpawnNamed(pollerProps, domain.ACTOR_ID_POLLER)
	if err != nil {
		return nil, err
	}

	return pollerActorPID, nil
}

func (state *MasterOfPuppetsActor) startHADiscoveryActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(1, 10*time.Second, decider)

	haDiscProps := actor.PropsFromProducer(func() actor.Actor {
		return NewHADiscoveryActor(&state.config, state.heatpumpActor, state.mqttActor, state.logger)
	}, actor.WithSupervisor(supervisor))
	haDiscPID, err := ctx.SpawnNamed(haDiscProps, HADISCOVERY_ACTOR_ID)
	if err != nil {
		return nil, err
	}

	return haDiscPID, nil
}

func (state *MasterOfPuppetsActor) startMQTTActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	mqttProps := actor.PropsFromProducer(func() actor.Actor {
		return state.mqttActorProvider(state.eventStream)
	}, actor.WithSupervisor(supervisor))
	mqttActorPID, err := ctx.SpawnNamed(mqttProps, domain.ACTOR_ID_MQTT)
	if err != nil {
		return nil, err
	}

	return mqttActorPID, nil
}

func (state *MasterOfPuppetsActor) startDiscoveryRepublishJob(ctx actor.Context) {
	trigger, err := quartz.NewCronTrigger(discoveryRepublishCron)
	if err != nil {
		state.logger.Error("master: invalid discovery republish cron", zap.Error(err))
		return
	}

	root := ctx.ActorSystem().Root
	haDiscPID := state.haDiscoveryActor
	republish := job.NewFunctionJob(func(_ context.Context) (bool, error) {
		root.Send(haDiscPID, RepublishDiscovery{})
		return true, nil
	})

	state.cronScheduler = quartz.NewStdScheduler()
	state.cronScheduler.Start(context.Background())
	err = state.cronScheduler.ScheduleJob(quartz.NewJobDetail(republish, quartz.NewJobKey("ha_discovery_republish")), trigger)
	if err != nil {
		state.logger.Error("master: could not schedule discovery republish", zap.Error(err))
	}
}

func (state *healthCheckResult) reset() {
	state.heatpumpActorHealthy = false
	state.mqttActorHealthy = false
	state.pollerActorHealthy = false
	state.checksReceived = 0
}

func (state *healthCheckResult) allReceived() bool {
	return state.checksReceived == 3
}

func (state *healthCheckResult) allHealthy() bool {
	return state.heatpumpActorHealthy && state.mqttActorHealthy && state.pollerActorHealthy
}

func (state *healthCheckResult) respond(ctx actor.Context) {
	resp := domain.ActorHealthResponse{
		Id:      "master",
		Healthy: state.allHealthy(),
	}
	if state.respondTo != nil {
		ctx.Send(state.respondTo, resp)
	}
}
