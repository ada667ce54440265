package actorutil

import (
	"log/slog"
	"time"

	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/internal/mqtt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

// PipeToSelfWithRecover reenters a future result into the actor's own
// mailbox, mapping a failed future to a recovery message.
func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand turns an MQTT command into the parameter
// write it stands for. Unknown entity ids map to nil without error.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand) (domain.ActorRequest, error) {
	switch cmd.Command {
	case mqtt.COMMAND_SWITCH:
		var parameter string
		switch cmd.DeviceId {
		case domain.SWITCH_ID_HEATING:
			parameter = domain.PARAM_HEATING_MODE
		case domain.SWITCH_ID_HOT_WATER:
			parameter = domain.PARAM_HOT_WATER_MODE
		default:
			return nil, nil
		}
		value := "off"
		if cmd.Payload == "on" {
			value = "automatic"
		}
		return domain.WriteParameterRequest{Parameter: parameter, Value: value}, nil
	case mqtt.COMMAND_NUMBER:
		var parameter string
		switch cmd.DeviceId {
		case domain.INPUT_NUMBER_ID_HEATING_CORRECTION:
			parameter = domain.PARAM_HEATING_CORRECTION
		case domain.INPUT_NUMBER_ID_HOT_WATER_TARGET:
			parameter = domain.PARAM_HOT_WATER_TARGET
		default:
			return nil, nil
		}
		return domain.WriteParameterRequest{Parameter: parameter, Value: cmd.Payload}, nil
	case mqtt.COMMAND_PARAMETER:
		// raw write service: the payload addresses the parameter by name
		return domain.WriteParameterRequest{Parameter: cmd.Param, Value: cmd.Payload}, nil
	}
	return nil, nil
}
