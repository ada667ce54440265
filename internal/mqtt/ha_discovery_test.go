package mqtt

import (
	"testing"

	"github.com/augi/luxtronik2mqtt/internal/config"
	"github.com/augi/luxtronik2mqtt/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestHADiscoveryTopicsHonorConfiguredBase(t *testing.T) {
	client := &MQTTClient{cfg: config.MQTTConfig{
		BaseTopic:        "luxtronik",
		HADiscoveryTopic: "custom_discovery",
	}}
	sensor := domain.GenericSensor{
		Device:     domain.Device{Id: "lux_heatpump_abc"},
		Id:         domain.SENSOR_ID_FLOW_TEMPERATURE,
		SensorType: domain.SENSOR_TYPE_SENSOR,
	}
	sw := domain.GenericSwitch{
		Device: domain.Device{Id: "lux_heatpump_abc"},
		Id:     domain.SWITCH_ID_HEATING,
	}
	number := domain.GenericInputNumber{
		Device: domain.Device{Id: "lux_heatpump_abc"},
		Id:     domain.INPUT_NUMBER_ID_HOT_WATER_TARGET,
	}

	assert.Equal(t, "custom_discovery/sensor/lux_heatpump_abc/flow_temperature/config",
		client.HADiscoverySensorTopic(sensor))
	assert.Equal(t, "custom_discovery/switch/lux_heatpump_abc/heating/config",
		client.HADiscoverySwitchTopic(sw))
	assert.Equal(t, "custom_discovery/number/lux_heatpump_abc/hot_water_temperature_target/config",
		client.HADiscoveryInputNumberTopic(number))
}

func TestHADiscoveryTopicsDefaultBase(t *testing.T) {
	client := &MQTTClient{cfg: config.MQTTConfig{BaseTopic: "luxtronik"}}
	sensor := domain.GenericSensor{
		Device:     domain.Device{Id: "lux_heatpump_abc"},
		Id:         domain.SENSOR_ID_OUTSIDE_TEMPERATURE,
		SensorType: domain.SENSOR_TYPE_SENSOR,
	}
	assert.Equal(t, "homeassistant/sensor/lux_heatpump_abc/outside_temperature/config",
		client.HADiscoverySensorTopic(sensor))
}
