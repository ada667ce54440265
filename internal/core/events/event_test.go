package events

import (
	"testing"

	"github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"

	"github.com/stretchr/testify/assert"
)

func eventById(events []any, id string) any {
	for _, ev := range events {
		if e, ok := ev.(domain.SensorUpdateEvent); ok && e.SensorId() == id {
			return ev
		}
	}
	return nil
}

func TestSnapshotToUpdateEvents(t *testing.T) {

	assert := assert.New(t)

	controller := &luxtronik.TestHeatpumpController{}
	events := SnapshotToUpdateEvents(controller.Snapshot())

	flow := eventById(events, domain.SENSOR_ID_FLOW_TEMPERATURE)
	if assert.NotNil(flow, "flow temperature event") {
		assert.InDelta(flow.(domain.FloatSensorUpdateEvent).Value, 32.1, 0.01, "flow temperature")
	}

	outside := eventById(events, domain.SENSOR_ID_OUTSIDE_TEMPERATURE)
	if assert.NotNil(outside, "outside temperature event") {
		assert.InDelta(outside.(domain.FloatSensorUpdateEvent).Value, -5.2, 0.01, "outside temperature")
	}

	heatingPump := eventById(events, domain.SENSOR_ID_HEATING_PUMP)
	if assert.NotNil(heatingPump, "heating pump event") {
		assert.True(heatingPump.(domain.BinarySensorUpdateEvent).Value, "heating pump on")
	}

	hotWaterPump := eventById(events, domain.SENSOR_ID_HOT_WATER_PUMP)
	if assert.NotNil(hotWaterPump, "hot water pump event") {
		assert.False(hotWaterPump.(domain.BinarySensorUpdateEvent).Value, "hot water pump off")
	}

	hours := eventById(events, domain.SENSOR_ID_OPERATING_HOURS)
	if assert.NotNil(hours, "operating hours event") {
		assert.InDelta(hours.(domain.FloatSensorUpdateEvent).Value, 8242731.0/3600, 0.1, "operating hours")
	}

	energy := eventById(events, domain.SENSOR_ID_HEAT_ENERGY_HEATING)
	if assert.NotNil(energy, "heat energy event") {
		assert.InDelta(energy.(domain.FloatSensorUpdateEvent).Value, 12458.2, 0.01, "heat energy heating")
	}

	mode := eventById(events, domain.SENSOR_ID_OPERATION_MODE)
	if assert.NotNil(mode, "operation mode event") {
		assert.Equal(mode.(domain.TextSensorUpdateEvent).Value, "heating", "operation mode")
	}

	firmware := eventById(events, domain.SENSOR_ID_FIRMWARE_VERSION)
	if assert.NotNil(firmware, "firmware event") {
		assert.Equal(firmware.(domain.TextSensorUpdateEvent).Value, "V2.88.1-9086", "firmware version")
	}

	ip := eventById(events, domain.SENSOR_ID_IP_ADDRESS)
	if assert.NotNil(ip, "ip address event") {
		assert.Equal(ip.(domain.TextSensorUpdateEvent).Value, "192.168.1.66", "ip address")
	}
}

func TestSnapshotToUpdateEventsParameters(t *testing.T) {

	assert := assert.New(t)

	controller := &luxtronik.TestHeatpumpController{}
	events := SnapshotToUpdateEvents(controller.Snapshot())

	target := eventById(events, domain.INPUT_NUMBER_ID_HOT_WATER_TARGET)
	if assert.NotNil(target, "hot water target event") {
		assert.InDelta(target.(domain.InputNumberSensorUpdateEvent).Value, 50.0, 0.01, "hot water target")
	}

	correction := eventById(events, domain.INPUT_NUMBER_ID_HEATING_CORRECTION)
	if assert.NotNil(correction, "heating correction event") {
		assert.InDelta(correction.(domain.InputNumberSensorUpdateEvent).Value, 0.0, 0.01, "heating correction")
	}

	heating := eventById(events, domain.SWITCH_ID_HEATING)
	if assert.NotNil(heating, "heating switch event") {
		assert.True(heating.(domain.SwitchSensorUpdateEvent).Value, "heating on")
	}
}

func TestSnapshotToUpdateEventsNilSnapshot(t *testing.T) {
	assert.Nil(t, SnapshotToUpdateEvents(nil), "nil snapshot")
}

func TestSnapshotToUpdateEventsSkipsMissingSlots(t *testing.T) {

	assert := assert.New(t)

	snap := &luxtronik.Snapshot{
		Calculations: map[string]luxtronik.Value{
			"ID_WEB_Temperatur_TVL": {Kind: luxtronik.KindCelsius, Raw: 210},
		},
	}
	events := SnapshotToUpdateEvents(snap)

	assert.NotNil(eventById(events, domain.SENSOR_ID_FLOW_TEMPERATURE), "flow temperature event")
	assert.Nil(eventById(events, domain.SENSOR_ID_RETURN_TEMPERATURE), "return temperature absent")
	assert.Nil(eventById(events, domain.SENSOR_ID_OPERATION_MODE), "operation mode absent")
}
