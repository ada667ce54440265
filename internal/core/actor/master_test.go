package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "github.com/augi/luxtronik2mqtt/internal/adapter/actor"
	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/internal/util"
	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.HeatpumpActor {
			return adactor.NewHeatpumpActor(&luxtronik.TestHeatpumpController{}, false, 5*time.Second, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		//return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	res, err = context.RequestFuture(pid, domain.GetValueRequest{ID: "calculations.ID_WEB_Temperatur_TVL"}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	valueResp, ok := res.(domain.GetValueResponse)
	assert.True(t, ok)
	assert.True(t, valueResp.Found, "value found")
	assert.InDelta(t, valueResp.Value.Float(), 32.1, 0.01, "flow temperature")

	context.Stop(pid)

	as.Shutdown()
}
