package util

import (
	"github.com/augi/luxtronik2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Heatpump: config.HeatpumpConfig{
			Host:                 "-.-.-.-",
			Port:                 8889,
			Safe:                 true,
			LockTimeoutSec:       30,
			MinUpdateIntervalSec: 60,
		},
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "luxtronik",
			HADiscoveryTopic: "homeassistant",
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis: 5000,
		},
		Port: 8080,
	}
}
