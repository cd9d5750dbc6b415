// chopperd - SR542 optical chopper bridge daemon
//
// chopperd connects a Stanford Research Systems SR542 chopper to an
// MQTT broker: commands in, acknowledgments and retained state out,
// with settings persisted in SQLite and phase telemetry streamed to
// InfluxDB.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/photonbench/chopperd/migrations"

	"github.com/photonbench/chopperd/internal/actuator"
	"github.com/photonbench/chopperd/internal/actuator/store"
	"github.com/photonbench/chopperd/internal/bridge"
	"github.com/photonbench/chopperd/internal/chopper"
	_ "github.com/photonbench/chopperd/internal/chopper/sim"
	"github.com/photonbench/chopperd/internal/infrastructure/config"
	"github.com/photonbench/chopperd/internal/infrastructure/database"
	"github.com/photonbench/chopperd/internal/infrastructure/influxdb"
	"github.com/photonbench/chopperd/internal/infrastructure/logging"
	"github.com/photonbench/chopperd/internal/infrastructure/mqtt"
	"github.com/photonbench/chopperd/internal/serialports"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error lets main handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting chopperd",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open database and bring the schema up to date
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("database ready", "path", cfg.Database.Path)

	// Build the settings table: discovered ports first, persisted
	// values restored on top, config port as the final word.
	ports, err := serialports.List()
	if err != nil {
		log.Warn("serial port enumeration failed", "error", err)
	}
	log.Info("serial ports discovered", "ports", ports)

	settings := actuator.DefaultSettings(ports)
	settingsStore := store.New(db)
	restoreSettings(ctx, settings, settingsStore, log)
	if cfg.Instrument.Port != "" {
		if err := settings.Set(actuator.SettingComPort, cfg.Instrument.Port); err != nil {
			log.Warn("configured port rejected", "port", cfg.Instrument.Port, "error", err)
		}
	}

	// Build the chopper driver and the actuator adapter
	drv, err := chopper.New(cfg.Instrument.Driver, chopper.Config{
		Port: settings.String(actuator.SettingComPort),
		Baud: cfg.Instrument.Baud,
	})
	if err != nil {
		return fmt.Errorf("creating chopper driver: %w", err)
	}

	scaling, bounds := actuator.ScalingFromConfig(cfg.Actuator)
	adapter, err := actuator.New(actuator.Options{
		Driver:   drv,
		Settings: settings,
		Scaling:  scaling,
		Bounds:   bounds,
		Store:    settingsStore,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("creating actuator: %w", err)
	}

	info, ok := adapter.Initialize(ctx)
	if !ok {
		return fmt.Errorf("initializing chopper: %s", info)
	}
	defer func() {
		if closeErr := adapter.Close(context.Background()); closeErr != nil {
			log.Error("error closing chopper", "error", closeErr)
		}
	}()
	log.Info("chopper initialized",
		"instrument_id", cfg.Instrument.ID,
		"driver", cfg.Instrument.Driver,
		"info", info,
	)

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
	)

	// Connect to InfluxDB (optional)
	var telemetry bridge.Telemetry
	influxClient, err := influxdb.Connect(cfg.InfluxDB)
	switch {
	case errors.Is(err, influxdb.ErrDisabled):
		log.Info("InfluxDB disabled")
	case err != nil:
		return fmt.Errorf("connecting to InfluxDB: %w", err)
	default:
		defer func() {
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		telemetry = influxClient
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	}

	// Start the MQTT bridge
	b, err := bridge.New(bridge.Options{
		Adapter:      adapter,
		Client:       mqttClient,
		InstrumentID: cfg.Instrument.ID,
		Units:        cfg.Actuator.Units,
		QoS:          byte(cfg.MQTT.QoS),
		PollInterval: cfg.GetPollInterval(),
		Telemetry:    telemetry,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("creating bridge: %w", err)
	}
	if err := b.Start(ctx); err != nil {
		return fmt.Errorf("starting bridge: %w", err)
	}
	defer b.Stop()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred calls run in reverse order: bridge, InfluxDB, MQTT,
	// chopper, database.

	log.Info("chopperd stopped")
	return nil
}

// restoreSettings overlays persisted values onto the defaults. A stale
// or invalid persisted value is logged and skipped rather than blocking
// startup.
func restoreSettings(ctx context.Context, settings *actuator.Settings, s *store.Store, log *logging.Logger) {
	values, err := s.LoadAll(ctx)
	if err != nil {
		log.Warn("loading persisted settings failed", "error", err)
		return
	}

	for _, name := range settings.Names() {
		value, ok := values[name]
		if !ok {
			continue
		}
		if err := settings.Set(name, value); err != nil {
			log.Warn("skipping persisted setting", "setting", name, "error", err)
		}
	}
	if len(values) > 0 {
		log.Info("persisted settings restored", "count", len(values))
	}
}

// getConfigPath returns the configuration file path.
// Uses the CHOPPERD_CONFIG environment variable if set.
func getConfigPath() string {
	if path := os.Getenv("CHOPPERD_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
