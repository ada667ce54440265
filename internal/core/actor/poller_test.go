package actor

import (
	"sync"
	"testing"
	"time"

	adactor "github.com/augi/luxtronik2mqtt/internal/adapter/actor"
	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/internal/util"
	"github.com/augi/luxtronik2mqtt/internal/util/actorutil"
	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPollerActorPublishesUpdates(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()
	cfg.MonitorConfig.PollIntervalMillis = 500

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	controller := &luxtronik.TestHeatpumpController{}

	heatpumpProps := actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewHeatpumpActor(controller, false, 5*time.Second, logger)
	})
	heatpumpPID := context.Spawn(heatpumpProps)

	es := eventstream.EventStream{}

	var mu sync.Mutex
	var got []any
	sub := es.Subscribe(func(value any) {
		mu.Lock()
		got = append(got, value)
		mu.Unlock()
	})
	defer es.Unsubscribe(sub)

	pollerProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&cfg, heatpumpPID, &es, logger)
	})
	pollerPID := context.Spawn(pollerProps)

	time.Sleep(2 * time.Second)

	mu.Lock()
	var flowSeen, modeSeen bool
	for _, ev := range got {
		switch e := ev.(type) {
		case domain.FloatSensorUpdateEvent:
			if e.Id == domain.SENSOR_ID_FLOW_TEMPERATURE {
				flowSeen = true
				assert.InDelta(e.Value, 32.1, 0.01, "flow temperature")
			}
		case domain.TextSensorUpdateEvent:
			if e.Id == domain.SENSOR_ID_OPERATION_MODE {
				modeSeen = true
				assert.Equal(e.Value, "heating", "operation mode")
			}
		}
	}
	mu.Unlock()

	assert.True(flowSeen, "flow temperature event")
	assert.True(modeSeen, "operation mode event")

	context.Stop(pollerPID)
	context.Stop(heatpumpPID)

	as.Shutdown()
}
