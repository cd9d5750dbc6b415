package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for chopperd.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Instrument InstrumentConfig `yaml:"instrument"`
	Actuator   ActuatorConfig   `yaml:"actuator"`
	Database   DatabaseConfig   `yaml:"database"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	InfluxDB   InfluxDBConfig   `yaml:"influxdb"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// InstrumentConfig identifies the chopper and how to reach it.
type InstrumentConfig struct {
	// ID is the stable identifier used in MQTT topics and telemetry tags.
	ID string `yaml:"id"`

	// Name is a human-readable label for log output.
	Name string `yaml:"name"`

	// Driver selects the registered chopper driver ("sim", or a vendor
	// driver compiled into the binary).
	Driver string `yaml:"driver"`

	// Port is the serial port the chopper is attached to (e.g., "COM3",
	// "/dev/ttyUSB0"). Ignored by the sim driver.
	Port string `yaml:"port"`

	// Baud is the serial baud rate. The SR542 fixes this at 115200.
	Baud int `yaml:"baud"`
}

// ActuatorConfig contains the host-facing positioning behaviour of the
/// phase axis: bounds, scaling, and the state poll interval.
type ActuatorConfig struct {
	// Units is the user-facing unit label for the phase axis.
	Units string `yaml:"units"`

	// Bounds clamps move targets before they reach the device.
	Bounds BoundsConfig `yaml:"bounds"`

	// Scaling is the affine transform between user units and device degrees.
	Scaling ScalingConfig `yaml:"scaling"`

	// PollInterval is how often the bridge polls the device position,
	// in seconds. 0 disables polling.
	PollInterval int `yaml:"poll_interval"`
}

// BoundsConfig contains optional move-target clamping limits.
type BoundsConfig struct {
	Enabled bool    `yaml:"enabled"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

// ScalingConfig contains the affine transform between user units and
/// device raw units: raw = value*Scale + Offset.
type ScalingConfig struct {
	Enabled bool    `yaml:"enabled"`
	Scale   float64 `yaml:"scale"`
	Offset  float64 `yaml:"offset"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for position telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: CHOPPERD_SECTION_KEY
// For example: CHOPPERD_INSTRUMENT_PORT, CHOPPERD_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
// The sim driver is the default so the daemon runs without hardware attached.
func defaultConfig() *Config {
	return &Config{
		Instrument: InstrumentConfig{
			ID:     "chopper-01",
			Name:   "SR542 Chopper",
			Driver: "sim",
			Baud:   115200,
		},
		Actuator: ActuatorConfig{
			Units: "deg",
			Scaling: ScalingConfig{
				Scale: 1.0,
			},
			PollInterval: 1,
		},
		Database: DatabaseConfig{
			Path:        "./data/chopperd.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "chopperd",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: CHOPPERD_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Instrument
	if v := os.Getenv("CHOPPERD_INSTRUMENT_DRIVER"); v != "" {
		cfg.Instrument.Driver = v
	}
	if v := os.Getenv("CHOPPERD_INSTRUMENT_PORT"); v != "" {
		cfg.Instrument.Port = v
	}
	if v := os.Getenv("CHOPPERD_INSTRUMENT_BAUD"); v != "" {
		if baud, err := strconv.Atoi(v); err == nil {
			cfg.Instrument.Baud = baud
		}
	}

	// Database
	if v := os.Getenv("CHOPPERD_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("CHOPPERD_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("CHOPPERD_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("CHOPPERD_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("CHOPPERD_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Instrument.ID == "" {
		errs = append(errs, "instrument.id is required")
	}
	if c.Instrument.Driver == "" {
		errs = append(errs, "instrument.driver is required")
	}
	if c.Instrument.Baud <= 0 {
		errs = append(errs, "instrument.baud must be positive")
	}

	if c.Actuator.Bounds.Enabled && c.Actuator.Bounds.Min > c.Actuator.Bounds.Max {
		errs = append(errs, "actuator.bounds.min must not exceed actuator.bounds.max")
	}
	if c.Actuator.Scaling.Enabled && c.Actuator.Scaling.Scale == 0 {
		errs = append(errs, "actuator.scaling.scale must be non-zero")
	}
	if c.Actuator.PollInterval < 0 {
		errs = append(errs, "actuator.poll_interval must not be negative")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetPollInterval returns the actuator poll interval as a Duration.
func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Actuator.PollInterval) * time.Second
}
