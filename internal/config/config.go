package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Heatpump HeatpumpConfig `mapstructure:"heatpump"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`

	MonitorConfig MonitorConfig `mapstructure:"monitor"`
	Port          uint          `mapstructure:"port"`
	HttpLog       bool          `mapstructure:"http_log"`
}

type HeatpumpConfig struct {
	Host string
	Port uint
	// Safe restricts writes to the known writable parameter set.
	Safe                        bool `mapstructure:"safe"`
	LockTimeoutSec              uint `mapstructure:"lock_timeout_sec"`
	UpdateImmediatelyAfterWrite bool `mapstructure:"update_immediately_after_write"`
	MinUpdateIntervalSec        uint `mapstructure:"min_update_interval_sec"`
}

type MonitorConfig struct {
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
