package luxtronik

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Kind describes how a raw heatpump word is decoded into a usable value.
type Kind int

const (
	KindUnknown Kind = iota
	KindCelsius
	KindKelvin
	KindBool
	KindPercent
	KindVoltage
	KindFlow
	KindEnergy
	KindSeconds
	KindHours
	KindCount
	KindLevel
	KindIPv4
	KindCharacter
	KindTimestamp
	KindOperationMode
	KindAccessMode
	KindErrorCode
)

// operation modes reported by calculation ID_WEB_WP_BZ_akt
const (
	OperationModeHeating      = 0
	OperationModeHotWater     = 1
	OperationModeSwimmingPool = 2
	OperationModeEVU          = 3
	OperationModeDefrost      = 4
	OperationModeNoRequest    = 5
	OperationModeHeatingExt   = 6
	OperationModeCooling      = 7
)

// access modes accepted by the heating/hot water mode parameters
const (
	AccessModeAutomatic  = 0
	AccessModeSecondHeat = 1
	AccessModeParty      = 2
	AccessModeHolidays   = 3
	AccessModeOff        = 4
)

func OperationModeToString(mode int32) string {
	switch mode {
	case OperationModeHeating:
		return "heating"
	case OperationModeHotWater:
		return "hot_water"
	case OperationModeSwimmingPool:
		return "swimming_pool"
	case OperationModeEVU:
		return "evu_lock"
	case OperationModeDefrost:
		return "defrost"
	case OperationModeNoRequest:
		return "no_request"
	case OperationModeHeatingExt:
		return "heating_external_source"
	case OperationModeCooling:
		return "cooling"
	default:
		return fmt.Sprintf("unknown(%d)", mode)
	}
}

func AccessModeToString(mode int32) string {
	switch mode {
	case AccessModeAutomatic:
		return "automatic"
	case AccessModeSecondHeat:
		return "second_heat_source"
	case AccessModeParty:
		return "party"
	case AccessModeHolidays:
		return "holidays"
	case AccessModeOff:
		return "off"
	default:
		return fmt.Sprintf("unknown(%d)", mode)
	}
}

// Value is one decoded heatpump word.
type Value struct {
	Kind Kind
	Raw  int32
}

// Float returns the value in its natural unit. Tenth-scaled kinds
// (temperatures, percentages, energy meters...) are divided by 10.
func (v Value) Float() float64 {
	switch v.Kind {
	case KindCelsius, KindKelvin, KindPercent, KindVoltage, KindEnergy, KindHours:
		return float64(v.Raw) / 10
	default:
		return float64(v.Raw)
	}
}

func (v Value) Bool() bool {
	return v.Raw != 0
}

// String renders the value the way it is published on MQTT and HTTP.
func (v Value) String() string {
	switch v.Kind {
	case KindCelsius, KindKelvin, KindPercent, KindVoltage, KindEnergy, KindHours:
		return strconv.FormatFloat(v.Float(), 'f', 1, 64)
	case KindBool:
		if v.Bool() {
			return "on"
		}
		return "off"
	case KindIPv4:
		return ipv4String(v.Raw)
	case KindTimestamp:
		return time.Unix(int64(v.Raw), 0).UTC().Format(time.RFC3339)
	case KindOperationMode:
		return OperationModeToString(v.Raw)
	case KindAccessMode:
		return AccessModeToString(v.Raw)
	default:
		return strconv.FormatInt(int64(v.Raw), 10)
	}
}

// ParseRaw converts a textual value (MQTT payload, HTTP body) back to the
// raw word written to the device.
func ParseRaw(kind Kind, s string) (int32, error) {
	s = strings.TrimSpace(s)
	switch kind {
	case KindCelsius, KindKelvin, KindPercent, KindVoltage, KindEnergy, KindHours:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("luxtronik: invalid number %q: %w", s, err)
		}
		if f >= 0 {
			return int32(f*10 + 0.5), nil
		}
		return int32(f*10 - 0.5), nil
	case KindBool:
		switch strings.ToLower(s) {
		case "on", "true", "1":
			return 1, nil
		case "off", "false", "0":
			return 0, nil
		}
		return 0, fmt.Errorf("luxtronik: invalid bool %q", s)
	case KindAccessMode:
		for mode := int32(AccessModeAutomatic); mode <= AccessModeOff; mode++ {
			if AccessModeToString(mode) == strings.ToLower(s) {
				return mode, nil
			}
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil || n < AccessModeAutomatic || n > AccessModeOff {
			return 0, fmt.Errorf("luxtronik: invalid access mode %q", s)
		}
		return int32(n), nil
	default:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("luxtronik: invalid value %q: %w", s, err)
		}
		return int32(n), nil
	}
}

func ipv4String(raw int32) string {
	u := uint32(raw)
	return net.IPv4(byte(u>>24), byte(u>>16), byte(u>>8), byte(u)).String()
}
