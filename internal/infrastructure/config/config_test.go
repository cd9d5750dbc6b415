package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
instrument:
  id: "chopper-lab-2"
  name: "Bench chopper"
  driver: "sim"
  port: "/dev/ttyUSB1"
actuator:
  units: "deg"
  bounds:
    enabled: true
    min: -180.0
    max: 180.0
database:
  path: "/tmp/chopperd-test.db"
mqtt:
  broker:
    host: "broker.lab"
    port: 1883
    client_id: "chopperd-test"
  qos: 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Instrument.ID != "chopper-lab-2" {
		t.Errorf("Instrument.ID = %q, want %q", cfg.Instrument.ID, "chopper-lab-2")
	}
	if cfg.Instrument.Port != "/dev/ttyUSB1" {
		t.Errorf("Instrument.Port = %q, want %q", cfg.Instrument.Port, "/dev/ttyUSB1")
	}
	if !cfg.Actuator.Bounds.Enabled {
		t.Error("Actuator.Bounds.Enabled = false, want true")
	}
	if cfg.MQTT.Broker.Host != "broker.lab" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.lab")
	}

	// Defaults survive a partial file.
	if cfg.Instrument.Baud != 115200 {
		t.Errorf("Instrument.Baud = %d, want default 115200", cfg.Instrument.Baud)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "instrument: [not: valid")
	_, err := Load(path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
instrument:
  id: "chopper-01"
  port: "COM3"
`)
	t.Setenv("CHOPPERD_INSTRUMENT_PORT", "COM7")
	t.Setenv("CHOPPERD_MQTT_HOST", "mqtt.lab")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Instrument.Port != "COM7" {
		t.Errorf("Instrument.Port = %q, want env override %q", cfg.Instrument.Port, "COM7")
	}
	if cfg.MQTT.Broker.Host != "mqtt.lab" {
		t.Errorf("MQTT.Broker.Host = %q, want env override %q", cfg.MQTT.Broker.Host, "mqtt.lab")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			modify:  func(_ *Config) {},
			wantErr: false,
		},
		{
			name:    "empty instrument id",
			modify:  func(c *Config) { c.Instrument.ID = "" },
			wantErr: true,
		},
		{
			name:    "empty driver",
			modify:  func(c *Config) { c.Instrument.Driver = "" },
			wantErr: true,
		},
		{
			name:    "zero baud",
			modify:  func(c *Config) { c.Instrument.Baud = 0 },
			wantErr: true,
		},
		{
			name: "inverted bounds",
			modify: func(c *Config) {
				c.Actuator.Bounds = BoundsConfig{Enabled: true, Min: 10, Max: -10}
			},
			wantErr: true,
		},
		{
			name: "zero scale with scaling enabled",
			modify: func(c *Config) {
				c.Actuator.Scaling = ScalingConfig{Enabled: true, Scale: 0}
			},
			wantErr: true,
		},
		{
			name:    "negative poll interval",
			modify:  func(c *Config) { c.Actuator.PollInterval = -1 },
			wantErr: true,
		},
		{
			name:    "invalid qos",
			modify:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name:    "influx enabled without url",
			modify:  func(c *Config) { c.InfluxDB.Enabled = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
