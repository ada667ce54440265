package actor

import (
	"fmt"
	"time"

	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/internal/util/actorutil"
	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	HEATPUMP_ACTOR_ID = "heatpump"
)

type HeatpumpActor struct {
	behavior          actor.Behavior
	stash             *actorutil.Stash
	controller        luxtronik.HeatpumpController
	updateImmediately bool
	taskTimeout       time.Duration
	logger            *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewHeatpumpActor(controller luxtronik.HeatpumpController, updateImmediatelyAfterWrite bool,
	lockTimeout time.Duration, logger *zap.Logger) *HeatpumpActor {
	act := &HeatpumpActor{
		controller:        controller,
		updateImmediately: updateImmediatelyAfterWrite,
		// device calls may wait the whole lock timeout before skipping
		taskTimeout: lockTimeout + 10*time.Second,
		behavior:    actor.NewBehavior(),
		stash:       &actorutil.Stash{},
		logger:      actorutil.ActorLogger("heatpump", logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HeatpumpActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HeatpumpActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("heatpump@starting started")
		if err := state.controller.Open(); err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		_ = state.controller.Close()
	default:
		state.logger.Debug("heatpump@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HeatpumpActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("heatpump@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      HEATPUMP_ACTOR_ID,
			Healthy: state.controller.Snapshot() != nil,
			State:   "idle",
		})
	case domain.GetValueRequest:
		// reads the last snapshot, so no device access and no waiting state
		state.logger.Debug("heatpump@default: GetValueRequest", zap.String("id", msg.ID))
		value, found := state.controller.GetValue(msg.ID)
		ctx.Respond(domain.GetValueResponse{
			ID:    msg.ID,
			Value: value,
			Found: found,
		})
	case domain.GetControllerInfoRequest:
		state.logger.Debug("heatpump@default: GetControllerInfoRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getControllerInfo),
			mapTaskResult[domain.GetControllerInfoResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetControllerInfoResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.taskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingHeatpump)
	case domain.RefreshRequest:
		state.logger.Debug("heatpump@default: RefreshRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.refresh),
			mapTaskResult[domain.RefreshResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.RefreshResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.taskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingHeatpump)
	case domain.WriteParameterRequest:
		state.logger.Debug("heatpump@default: WriteParameterRequest",
			zap.String("parameter", msg.Parameter), zap.String("value", msg.Value))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.WriteParameterResponse, error) {
			return state.writeParameter(msg.Parameter, msg.Value)
		}), mapTaskResult[domain.WriteParameterResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.WriteParameterResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
					Parameter: msg.Parameter,
				},
				replyTo: sender,
			}
		}).WithTimeout(state.taskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingHeatpump)
	case *actor.Stopping:
		_ = state.controller.Close()
	default:
		state.logger.Debug("heatpump@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HeatpumpActor) WaitingHeatpump(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("heatpump@WaitingHeatpump backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		// MQTT commands arrive without a sender to reply to
		if msg.replyTo != nil {
			ctx.Send(msg.replyTo, msg.message)
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		_ = state.controller.Close()
	default:
		state.logger.Debug("heatpump@WaitingHeatpump stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *HeatpumpActor) getControllerInfo() (*domain.GetControllerInfoResponse, error) {
	info, err := a.controller.Info()
	if err != nil {
		a.logger.Error("could not read controller info", zap.Error(err))
		return nil, err
	}
	var visibilities map[string]luxtronik.Value
	if snap := a.controller.Snapshot(); snap != nil {
		visibilities = snap.Visibilities
	}
	return &domain.GetControllerInfoResponse{
		Info:         info,
		Visibilities: visibilities,
	}, nil
}

func (a *HeatpumpActor) refresh() (*domain.RefreshResponse, error) {
	if err := a.controller.Update(); err != nil {
		a.logger.Error("update failed", zap.Error(err))
		return nil, err
	}
	return &domain.RefreshResponse{
		Snapshot: a.controller.Snapshot(),
	}, nil
}

func (a *HeatpumpActor) writeParameter(parameter, value string) (*domain.WriteParameterResponse, error) {
	if err := a.controller.Write(parameter, value, a.updateImmediately); err != nil {
		a.logger.Error("write failed", zap.String("parameter", parameter), zap.Error(err))
		return nil, err
	}
	return &domain.WriteParameterResponse{
		Parameter: parameter,
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
