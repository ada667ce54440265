package events

import (
	. "github.com/augi/luxtronik2mqtt/internal/core/domain"
	"github.com/augi/luxtronik2mqtt/pkg/luxtronik"
)

// sensorBinding maps one bridge entity to its slot in a snapshot group.
type sensorBinding struct {
	sensorId string
	source   string
}

var temperatureBindings = []sensorBinding{
	{SENSOR_ID_FLOW_TEMPERATURE, "ID_WEB_Temperatur_TVL"},
	{SENSOR_ID_RETURN_TEMPERATURE, "ID_WEB_Temperatur_TRL"},
	{SENSOR_ID_RETURN_TEMPERATURE_TARGET, "ID_WEB_Sollwert_TRL_HZ"},
	{SENSOR_ID_OUTSIDE_TEMPERATURE, "ID_WEB_Temperatur_TA"},
	{SENSOR_ID_OUTSIDE_TEMPERATURE_AVG, "ID_WEB_Mitteltemperatur"},
	{SENSOR_ID_HOT_WATER_TEMPERATURE, "ID_WEB_Temperatur_TBW"},
	{SENSOR_ID_HOT_GAS_TEMPERATURE, "ID_WEB_Temperatur_THG"},
	{SENSOR_ID_SOURCE_IN_TEMPERATURE, "ID_WEB_Temperatur_TWE"},
	{SENSOR_ID_SOURCE_OUT_TEMPERATURE, "ID_WEB_Temperatur_TWA"},
}

var binaryBindings = []sensorBinding{
	{SENSOR_ID_HEATING_PUMP, "ID_WEB_HUPout"},
	{SENSOR_ID_HOT_WATER_PUMP, "ID_WEB_BUPout"},
	{SENSOR_ID_CIRCULATION_PUMP, "ID_WEB_ZIPout"},
	{SENSOR_ID_COMPRESSOR1, "ID_WEB_VD1out"},
	{SENSOR_ID_EVU_LOCK, "ID_WEB_EVUin"},
}

var energyBindings = []sensorBinding{
	{SENSOR_ID_HEAT_ENERGY_HEATING, "ID_WEB_WMZ_Heizung"},
	{SENSOR_ID_HEAT_ENERGY_HOT_WATER, "ID_WEB_WMZ_Brauchwasser"},
	{SENSOR_ID_HEAT_ENERGY_TOTAL, "ID_WEB_WMZ_Seit"},
}

var hoursBindings = []sensorBinding{
	{SENSOR_ID_OPERATING_HOURS, "ID_WEB_Zaehler_BetrZeitWP"},
	{SENSOR_ID_OPERATING_HOURS_COMPRESSOR1, "ID_WEB_Zaehler_BetrZeitVD1"},
}

// SnapshotToUpdateEvents fans a device snapshot out into one update event
// per bridged entity. Entities whose slot is missing from the snapshot
// produce no event.
func SnapshotToUpdateEvents(snap *luxtronik.Snapshot) []any {
	if snap == nil {
		return nil
	}
	var events []any

	for _, b := range temperatureBindings {
		if v, ok := snap.Calculations[b.source]; ok {
			events = append(events, FloatSensorUpdateEvent{
				SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: b.sensorId},
				Value:                  v.Float(),
				Decimals:               1,
			})
		}
	}
	for _, b := range binaryBindings {
		if v, ok := snap.Calculations[b.source]; ok {
			events = append(events, BinarySensorUpdateEvent{
				SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: b.sensorId},
				Value:                  v.Bool(),
			})
		}
	}
	for _, b := range energyBindings {
		if v, ok := snap.Calculations[b.source]; ok {
			events = append(events, FloatSensorUpdateEvent{
				SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: b.sensorId},
				Value:                  v.Float(),
				Decimals:               1,
			})
		}
	}
	for _, b := range hoursBindings {
		if v, ok := snap.Calculations[b.source]; ok {
			events = append(events, FloatSensorUpdateEvent{
				SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: b.sensorId},
				Value:                  v.Float() / 3600,
				Decimals:               1,
			})
		}
	}

	if v, ok := snap.Calculations["ID_WEB_WP_BZ_akt"]; ok {
		events = append(events, TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: SENSOR_ID_OPERATION_MODE},
			Value:                  v.String(),
		})
	}
	if snap.FirmwareVersion != "" {
		events = append(events, TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: SENSOR_ID_FIRMWARE_VERSION},
			Value:                  snap.FirmwareVersion,
		})
	}
	if v, ok := snap.Calculations["ID_WEB_AdresseIP_akt"]; ok {
		events = append(events, TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: SENSOR_ID_IP_ADDRESS},
			Value:                  v.String(),
		})
	}

	events = append(events, parameterUpdateEvents(snap)...)

	return events
}

// parameterUpdateEvents reflects the writable entities back from the
// settings block so Home Assistant shows the value the device accepted.
func parameterUpdateEvents(snap *luxtronik.Snapshot) []any {
	var events []any

	if v, ok := snap.Parameters[PARAM_HEATING_CORRECTION]; ok {
		events = append(events, InputNumberSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: INPUT_NUMBER_ID_HEATING_CORRECTION},
			Value:                  v.Float(),
			Decimals:               1,
		})
	}
	if v, ok := snap.Parameters[PARAM_HOT_WATER_TARGET]; ok {
		events = append(events, InputNumberSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: INPUT_NUMBER_ID_HOT_WATER_TARGET},
			Value:                  v.Float(),
			Decimals:               1,
		})
	}
	if v, ok := snap.Parameters[PARAM_HEATING_MODE]; ok {
		events = append(events, SwitchSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: SWITCH_ID_HEATING},
			Value:                  v.Raw != luxtronik.AccessModeOff,
		})
	}
	if v, ok := snap.Parameters[PARAM_HOT_WATER_MODE]; ok {
		events = append(events, SwitchSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: SWITCH_ID_HOT_WATER},
			Value:                  v.Raw != luxtronik.AccessModeOff,
		})
	}

	return events
}
