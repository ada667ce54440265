package actor

import (
	"testing"
	"time"

	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/internal/util/actorutil"
	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetControllerInfoHeatpumpActor(t *testing.T) {

	assert := assert.New(t)

	controller := &luxtronik.TestHeatpumpController{}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewHeatpumpActor(controller, false, 5*time.Second, logger)
	})
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetControllerInfoRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetControllerInfoResponse)

	assert.Equal(resp.Info.FirmwareVersion, "V2.88.1-9086", "firmware version")
	assert.Equal(resp.Info.IPAddress, "192.168.1.66", "IP address")
	assert.True(resp.Visibilities["ID_Visi_OUT_HUP"].Bool(), "heating pump visibility")

	context.Stop(pid)

	as.Shutdown()
}

func TestRefreshHeatpumpActor(t *testing.T) {

	assert := assert.New(t)

	controller := &luxtronik.TestHeatpumpController{}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewHeatpumpActor(controller, false, 5*time.Second, logger)
	})
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.RefreshRequest{}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.RefreshResponse)

	assert.True(controller.Updates > 0, "update count")
	flow := resp.Snapshot.Calculations["ID_WEB_Temperatur_TVL"]
	assert.InDelta(flow.Float(), 32.1, 0.01, "flow temperature")

	context.Stop(pid)

	as.Shutdown()
}

func TestWriteParameterHeatpumpActor(t *testing.T) {

	assert := assert.New(t)

	controller := &luxtronik.TestHeatpumpController{}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewHeatpumpActor(controller, true, 5*time.Second, logger)
	})
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.WriteParameterRequest{Parameter: "ID_Einst_BWS_akt", Value: "52.5"}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.WriteParameterResponse)

	assert.NoError(resp.ResponseError, "write error")
	assert.Equal(resp.Parameter, "ID_Einst_BWS_akt", "written parameter")
	if assert.Len(controller.Written, 1, "write count") {
		assert.Equal(controller.Written[0].Value, "52.5", "written value")
		assert.True(controller.Written[0].UpdateImmediately, "update immediately flag")
	}

	context.Stop(pid)

	as.Shutdown()
}

func TestGetValueHeatpumpActor(t *testing.T) {

	assert := assert.New(t)

	controller := &luxtronik.TestHeatpumpController{}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewHeatpumpActor(controller, false, 5*time.Second, logger)
	})
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	result, err := context.RequestFuture(pid, domain.GetValueRequest{ID: "calculations.ID_WEB_Temperatur_TBW"}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetValueResponse)

	assert.True(resp.Found, "value found")
	assert.InDelta(resp.Value.Float(), 48.2, 0.01, "hot water temperature")

	result, err = context.RequestFuture(pid, domain.GetValueRequest{ID: "bogus_id"}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp = result.(domain.GetValueResponse)

	assert.False(resp.Found, "malformed id is absent")

	context.Stop(pid)

	as.Shutdown()
}
