package domain

import (
	"testing"

	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeatpumpDevice() Device {
	return HeatpumpDevice(&luxtronik.ControllerInfo{
		Address:         "192.168.1.66:8889",
		FirmwareVersion: "V2.88.1-9086",
	})
}

func TestHeatpumpSensorsFirstVisibleCarriesFullDevice(t *testing.T) {
	device := testHeatpumpDevice()

	// hide the first catalog entry so another sensor leads the list
	sensors := HeatpumpSensors(device, map[string]luxtronik.Value{
		"ID_Visi_Temp_Vorlauf": {Kind: luxtronik.KindBool, Raw: 0},
	})

	require.NotEmpty(t, sensors)
	assert.NotEqual(t, SENSOR_ID_FLOW_TEMPERATURE, sensors[0].Id)
	assert.Equal(t, "Alpha Innotec", sensors[0].Device.Manufacturer)
	assert.Equal(t, "Luxtronik 2.0", sensors[0].Device.Model)
	assert.Equal(t, device.Version, sensors[0].Device.Version)
	for _, sensor := range sensors[1:] {
		assert.Empty(t, sensor.Device.Manufacturer)
		assert.Equal(t, device.Id, sensor.Device.Id)
	}
}

func TestHeatpumpSensorsVisibilityFilter(t *testing.T) {
	device := testHeatpumpDevice()

	sensors := HeatpumpSensors(device, map[string]luxtronik.Value{
		"ID_Visi_Temp_Vorlauf": {Kind: luxtronik.KindBool, Raw: 1},
		"ID_Visi_OUT_HUP":      {Kind: luxtronik.KindBool, Raw: 0},
	})

	ids := make(map[string]bool)
	for _, sensor := range sensors {
		ids[sensor.Id] = true
	}
	assert.True(t, ids[SENSOR_ID_FLOW_TEMPERATURE])
	assert.False(t, ids[SENSOR_ID_HEATING_PUMP])
	// unknown flags discover rather than hide
	assert.True(t, ids[SENSOR_ID_HOT_WATER_TEMPERATURE])
}
