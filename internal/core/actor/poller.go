package actor

import (
	"fmt"
	"time"

	"github.com/augi/luxtronik2mqtt/internal/config"
	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/internal/core/events"
	. "github.com/augi/luxtronik2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// PollerActor periodically asks the heatpump actor for a fresh snapshot
// and turns it into sensor update events. The device side throttles
// refreshes on its own, so a dense poll interval only re-reads the last
// snapshot.
type PollerActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	heatpumpActor *actor.PID
	config        *config.Config
	eventStream   *eventstream.EventStream

	logger *zap.Logger
}

type pollTick struct {
}

func NewPollerActor(config *config.Config, heatpumpActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *PollerActor {
	act := &PollerActor{
		config:        config,
		heatpumpActor: heatpumpActor,
		behavior:      actor.NewBehavior(),
		stash:         &Stash{},
		logger:        ActorLogger(domain.ACTOR_ID_POLLER, logger),
		eventStream:   eventStream,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *PollerActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *PollerActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("poller@starting started")

		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
			state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), pollTick{})
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("poller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("poller@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   "idle",
		})
	case pollTick:
		state.logger.Debug("poller@default tick")
		// a refresh may wait the whole device lock timeout
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.heatpumpActor, domain.RefreshRequest{}, state.refreshTimeout()), func(err error) any {
			return domain.RefreshResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})

		// schedule next tick
		state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), pollTick{})
		state.behavior.BecomeStacked(state.WaitingSnapshotReceive)
	default:
		state.logger.Debug("poller@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) WaitingSnapshotReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.RefreshResponse:
		if msg.HasResponseError() {
			state.logger.Error("poller@waiting RefreshResponse error", zap.Error(msg.GetResponseError()))
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("poller@waiting RefreshResponse")
		if msg.Snapshot != nil {
			evs := events.SnapshotToUpdateEvents(msg.Snapshot)
			for _, ev := range evs {
				state.eventStream.Publish(ev)
			}
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("poller@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) refreshTimeout() time.Duration {
	return time.Duration(state.config.Heatpump.LockTimeoutSec)*time.Second + 15*time.Second
}
