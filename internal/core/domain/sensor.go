package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE                 = "bridge"
	SENSOR_ID_FLOW_TEMPERATURE             = "flow_temperature"
	SENSOR_ID_RETURN_TEMPERATURE           = "return_temperature"
	SENSOR_ID_RETURN_TEMPERATURE_TARGET    = "return_temperature_target"
	SENSOR_ID_OUTSIDE_TEMPERATURE          = "outside_temperature"
	SENSOR_ID_OUTSIDE_TEMPERATURE_AVG      = "outside_temperature_avg"
	SENSOR_ID_HOT_WATER_TEMPERATURE        = "hot_water_temperature"
	SENSOR_ID_HOT_GAS_TEMPERATURE          = "hot_gas_temperature"
	SENSOR_ID_SOURCE_IN_TEMPERATURE        = "source_in_temperature"
	SENSOR_ID_SOURCE_OUT_TEMPERATURE       = "source_out_temperature"
	SENSOR_ID_OPERATION_MODE               = "operation_mode"
	SENSOR_ID_HEATING_PUMP                 = "heating_circulation_pump"
	SENSOR_ID_HOT_WATER_PUMP               = "hot_water_charging_pump"
	SENSOR_ID_CIRCULATION_PUMP             = "circulation_pump"
	SENSOR_ID_COMPRESSOR1                  = "compressor1"
	SENSOR_ID_EVU_LOCK                     = "evu_lock"
	SENSOR_ID_OPERATING_HOURS              = "operating_hours"
	SENSOR_ID_OPERATING_HOURS_COMPRESSOR1  = "operating_hours_compressor1"
	SENSOR_ID_HEAT_ENERGY_HEATING          = "heat_energy_heating"
	SENSOR_ID_HEAT_ENERGY_HOT_WATER        = "heat_energy_hot_water"
	SENSOR_ID_HEAT_ENERGY_TOTAL            = "heat_energy_total"
	SENSOR_ID_FIRMWARE_VERSION             = "firmware_version"
	SENSOR_ID_IP_ADDRESS                   = "ip_address"
	SWITCH_ID_HEATING                      = "heating"
	SWITCH_ID_HOT_WATER                    = "hot_water"
	INPUT_NUMBER_ID_HEATING_CORRECTION     = "heating_temperature_correction"
	INPUT_NUMBER_ID_HOT_WATER_TARGET       = "hot_water_temperature_target"
	STATE_CLASS_MEASUREMENT                = "measurement"
	STATE_CLASS_TOTAL_INCREASING           = "total_increasing"
	DEVICE_CLASS_TEMPERATURE               = "temperature"
	DEVICE_CLASS_ENERGY                    = "energy"
	DEVICE_CLASS_DURATION                  = "duration"
	DEVICE_CLASS_RUNNING                   = "running"
	DEVICE_CLASS_LOCK                      = "lock"
	DEVICE_CLASS_CONNECTIVITY              = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC                = "diagnostic"
	ENTITY_CLASS_CONFIG                    = "config"
	SENSOR_TYPE_SENSOR                     = "sensor"
	SENSOR_TYPE_BINARY                     = "binary_sensor"
	INPUT_NUMBER_MODE_BOX                  = "box"
	INPUT_NUMBER_MODE_SLIDER               = "slider"
)

// Parameters behind the writable entities.
const (
	PARAM_HEATING_CORRECTION = "ID_Einst_WK_akt"
	PARAM_HOT_WATER_TARGET   = "ID_Einst_BWS_akt"
	PARAM_HEATING_MODE       = "ID_Ba_Hz_akt"
	PARAM_HOT_WATER_MODE     = "ID_Ba_Bw_akt"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("luxtronik_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "augi",
		Model:        "luxtronik2mqtt",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Luxtronik bridge %s", md5HashShort(baseTopic)),
	}
}

func HeatpumpDevice(info *luxtronik.ControllerInfo) Device {
	return Device{
		Id:           fmt.Sprintf("lux_heatpump_%s", md5HashShort(info.Address)),
		Version:      info.FirmwareVersion,
		Manufacturer: "Alpha Innotec",
		Model:        "Luxtronik 2.0",
		Name:         fmt.Sprintf("Heatpump %s", md5HashShort(info.Address)),
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {
	return []GenericSensor{
		{
			Device:      bridgeDevice,
			Id:          SENSOR_ID_BRIDGE_STATE,
			SensorType:  SENSOR_TYPE_BINARY,
			Name:        "Bridge state",
			DeviceClass: DEVICE_CLASS_CONNECTIVITY,
			UniqueId:    uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
		},
	}
}

// heatpumpSensorDef binds one MQTT entity to a visibility flag. An empty
// visibility is always discovered; a named one must be set on the device.
type heatpumpSensorDef struct {
	sensor     GenericSensor
	visibility string
}

// HeatpumpSensors builds the discoverable entity set for one controller,
// filtered by the display flags the device itself uses to hide panels.
func HeatpumpSensors(device Device, visibilities map[string]luxtronik.Value) []GenericSensor {
	defs := []heatpumpSensorDef{
		{sensor: temperatureSensor(device, SENSOR_ID_FLOW_TEMPERATURE, "Flow temperature"), visibility: "ID_Visi_Temp_Vorlauf"},
		{sensor: temperatureSensor(device, SENSOR_ID_RETURN_TEMPERATURE, "Return temperature"), visibility: "ID_Visi_Temp_Ruecklauf"},
		{sensor: temperatureSensor(device, SENSOR_ID_RETURN_TEMPERATURE_TARGET, "Return temperature target"), visibility: "ID_Visi_Temp_Rl_Soll"},
		{sensor: temperatureSensor(device, SENSOR_ID_OUTSIDE_TEMPERATURE, "Outside temperature"), visibility: "ID_Visi_Temp_Aussent"},
		{sensor: temperatureSensor(device, SENSOR_ID_OUTSIDE_TEMPERATURE_AVG, "Outside temperature average"), visibility: "ID_Visi_Temp_Aussent"},
		{sensor: temperatureSensor(device, SENSOR_ID_HOT_WATER_TEMPERATURE, "Hot water temperature"), visibility: "ID_Visi_Temp_BW_Ist"},
		{sensor: temperatureSensor(device, SENSOR_ID_HOT_GAS_TEMPERATURE, "Hot gas temperature"), visibility: "ID_Visi_Temp_Heissgas"},
		{sensor: temperatureSensor(device, SENSOR_ID_SOURCE_IN_TEMPERATURE, "Source in temperature"), visibility: "ID_Visi_Temp_WQ_Ein"},
		{sensor: temperatureSensor(device, SENSOR_ID_SOURCE_OUT_TEMPERATURE, "Source out temperature")},
		{sensor: GenericSensor{
			Device:     device,
			Id:         SENSOR_ID_OPERATION_MODE,
			SensorType: SENSOR_TYPE_SENSOR,
			Name:       "Operation mode",
			UniqueId:   uniqueId(device.Id, SENSOR_ID_OPERATION_MODE),
		}},
		{sensor: binarySensor(device, SENSOR_ID_HEATING_PUMP, "Heating circulation pump", DEVICE_CLASS_RUNNING), visibility: "ID_Visi_OUT_HUP"},
		{sensor: binarySensor(device, SENSOR_ID_HOT_WATER_PUMP, "Hot water charging pump", DEVICE_CLASS_RUNNING), visibility: "ID_Visi_OUT_BUP"},
		{sensor: binarySensor(device, SENSOR_ID_CIRCULATION_PUMP, "Circulation pump", DEVICE_CLASS_RUNNING), visibility: "ID_Visi_OUT_Zirkulationspumpe"},
		{sensor: binarySensor(device, SENSOR_ID_COMPRESSOR1, "Compressor 1", DEVICE_CLASS_RUNNING), visibility: "ID_Visi_OUT_Verdichter1"},
		{sensor: binarySensor(device, SENSOR_ID_EVU_LOCK, "EVU lock", DEVICE_CLASS_LOCK)},
		{sensor: hoursSensor(device, SENSOR_ID_OPERATING_HOURS, "Operating hours"), visibility: "ID_Visi_Bst_BStdWP"},
		{sensor: hoursSensor(device, SENSOR_ID_OPERATING_HOURS_COMPRESSOR1, "Operating hours compressor 1"), visibility: "ID_Visi_Bst_BStdVD1"},
		{sensor: energySensor(device, SENSOR_ID_HEAT_ENERGY_HEATING, "Heat energy heating"), visibility: "ID_Visi_Waermemenge"},
		{sensor: energySensor(device, SENSOR_ID_HEAT_ENERGY_HOT_WATER, "Heat energy hot water"), visibility: "ID_Visi_Waermemenge"},
		{sensor: energySensor(device, SENSOR_ID_HEAT_ENERGY_TOTAL, "Heat energy total"), visibility: "ID_Visi_Waermemenge"},
		{sensor: diagnosticSensor(device, SENSOR_ID_FIRMWARE_VERSION, "Firmware version")},
		{sensor: diagnosticSensor(device, SENSOR_ID_IP_ADDRESS, "IP address")},
	}

	// only the first discovered entity carries the full device record
	var sensors []GenericSensor
	for _, def := range defs {
		if !visible(visibilities, def.visibility) {
			continue
		}
		if len(sensors) > 0 {
			def.sensor.Device = IdDevice(device)
		}
		sensors = append(sensors, def.sensor)
	}
	return sensors
}

// HeatpumpSwitches exposes the heating and hot water operating modes as
// on/off entities (on = automatic, off = off).
func HeatpumpSwitches(device Device) []GenericSwitch {
	return []GenericSwitch{
		{
			Device:   IdDevice(device),
			Id:       SWITCH_ID_HEATING,
			Name:     "Heating",
			UniqueId: uniqueId(device.Id, SWITCH_ID_HEATING),
			Icon:     "mdi:radiator",
		},
		{
			Device:   IdDevice(device),
			Id:       SWITCH_ID_HOT_WATER,
			Name:     "Hot water",
			UniqueId: uniqueId(device.Id, SWITCH_ID_HOT_WATER),
			Icon:     "mdi:water-boiler",
		},
	}
}

func HeatpumpInputNumbers(device Device) []GenericInputNumber {
	return []GenericInputNumber{
		{
			Device:   IdDevice(device),
			Id:       INPUT_NUMBER_ID_HEATING_CORRECTION,
			Name:     "Heating temperature correction",
			UniqueId: uniqueId(device.Id, INPUT_NUMBER_ID_HEATING_CORRECTION),
			Icon:     "mdi:thermometer-lines",
			Min:      -5,
			Max:      5,
			Step:     0.5,
			Mode:     INPUT_NUMBER_MODE_BOX,
		},
		{
			Device:   IdDevice(device),
			Id:       INPUT_NUMBER_ID_HOT_WATER_TARGET,
			Name:     "Hot water temperature target",
			UniqueId: uniqueId(device.Id, INPUT_NUMBER_ID_HOT_WATER_TARGET),
			Icon:     "mdi:water-thermometer",
			Min:      30,
			Max:      65,
			Step:     0.5,
			Mode:     INPUT_NUMBER_MODE_SLIDER,
		},
	}
}

func temperatureSensor(device Device, id, name string) GenericSensor {
	return GenericSensor{
		Device:            device,
		Id:                id,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              name,
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(device.Id, id),
	}
}

func binarySensor(device Device, id, name, deviceClass string) GenericSensor {
	return GenericSensor{
		Device:      device,
		Id:          id,
		SensorType:  SENSOR_TYPE_BINARY,
		Name:        name,
		DeviceClass: deviceClass,
		UniqueId:    uniqueId(device.Id, id),
	}
}

func hoursSensor(device Device, id, name string) GenericSensor {
	return GenericSensor{
		Device:            device,
		Id:                id,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              name,
		StateClass:        STATE_CLASS_TOTAL_INCREASING,
		DeviceClass:       DEVICE_CLASS_DURATION,
		UnitOfMeasurement: "h",
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:          uniqueId(device.Id, id),
	}
}

func energySensor(device Device, id, name string) GenericSensor {
	return GenericSensor{
		Device:            device,
		Id:                id,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              name,
		StateClass:        STATE_CLASS_TOTAL_INCREASING,
		DeviceClass:       DEVICE_CLASS_ENERGY,
		UnitOfMeasurement: "kWh",
		UniqueId:          uniqueId(device.Id, id),
	}
}

func diagnosticSensor(device Device, id, name string) GenericSensor {
	return GenericSensor{
		Device:         device,
		Id:             id,
		SensorType:     SENSOR_TYPE_SENSOR,
		Name:           name,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(device.Id, id),
	}
}

func visible(visibilities map[string]luxtronik.Value, flag string) bool {
	if flag == "" {
		return true
	}
	v, ok := visibilities[flag]
	if !ok {
		// unknown flag: discover rather than silently hide
		return true
	}
	return v.Bool()
}

func uniqueId(deviceId, sensorId string) string {
	return fmt.Sprintf("%s_%s", deviceId, sensorId)
}

func md5HashShort(value string) string {
	hash := md5.Sum([]byte(value))
	return hex.EncodeToString(hash[:])[:8]
}
