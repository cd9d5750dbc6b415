package actuator

import (
	"context"
	"fmt"
	"sync"

	"github.com/photonbench/chopperd/internal/chopper"
)

// Logger is the optional logging interface used by the adapter.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SettingsStore persists committed setting values.
// It is optional - if nil, settings live only in memory.
type SettingsStore interface {
	// Save stores the canonical value of one setting.
	Save(ctx context.Context, name string, value any) error
}

// Adapter bridges the host-facing positionable-device contract to a
// chopper driver.
//
// It owns the settings table, the affine scaling between user units and
// device degrees, bounds clamping, and the current/target position
// cache. Device communication is delegated entirely to the driver.
//
// The adapter is synchronous and does not retry; driver errors propagate
// to the caller. The host side (the MQTT bridge) serialises calls, so
// the internal mutex only guards the position cache.
type Adapter struct {
	drv      chopper.Driver
	settings *Settings
	scaling  Transform
	bounds   Bounds
	store    SettingsStore
	logger   Logger

	// Position cache, in user-facing units.
	posMu   sync.RWMutex
	current float64
	target  float64
}

// Options configures a new Adapter.
type Options struct {
	// Driver is the device driver. Required.
	Driver chopper.Driver

	// Settings is the initial settings table. Required.
	Settings *Settings

	// Scaling is the affine transform between user units and device degrees.
	Scaling Transform

	// Bounds clamps move targets.
	Bounds Bounds

	// Store persists committed settings. Optional.
	Store SettingsStore

	// Logger is an optional structured logger.
	Logger Logger
}

// New creates an adapter. Call Initialize to connect to the device.
func New(opts Options) (*Adapter, error) {
	if opts.Driver == nil {
		return nil, fmt.Errorf("driver is required")
	}
	if opts.Settings == nil {
		return nil, fmt.Errorf("settings table is required")
	}

	return &Adapter{
		drv:      opts.Driver,
		settings: opts.Settings,
		scaling:  opts.Scaling,
		bounds:   opts.Bounds,
		store:    opts.Store,
		logger:   opts.Logger,
	}, nil
}

// Settings returns the live settings table.
func (a *Adapter) Settings() *Settings {
	return a.settings
}

// IsConnected reports the driver's own view of connectivity.
func (a *Adapter) IsConnected() bool {
	return a.drv.IsConnected()
}

// Initialize opens the device connection and applies every current
// setting in declaration order.
//
// Success is the driver's own connectivity check. A connection failure
// is reported as (info, false) - never a panic - so the host can present
// a failed initialisation without tearing down.
func (a *Adapter) Initialize(ctx context.Context) (string, bool) {
	if err := a.drv.Connect(ctx); err != nil {
		a.logWarn("chopper connection failed", "error", err)
		return fmt.Sprintf("chopper connection failed: %v", err), false
	}

	for _, name := range a.settings.Names() {
		value, err := a.settings.Get(name)
		if err != nil {
			continue
		}
		if err := a.applySetting(ctx, name, value); err != nil {
			a.logWarn("applying setting failed during initialization", "setting", name, "error", err)
			return fmt.Sprintf("applying setting %q failed: %v", name, err), false
		}
	}

	a.logInfo("chopper initialized", "connected", a.drv.IsConnected())
	return "chopper initialized", a.drv.IsConnected()
}

// Position queries the device phase, converts it to user units, caches
// it as the current position, and returns it.
func (a *Adapter) Position(ctx context.Context) (float64, error) {
	raw, err := a.drv.Phase(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading phase: %w", err)
	}

	value := a.scaling.FromDevice(raw)

	a.posMu.Lock()
	a.current = value
	a.posMu.Unlock()

	return value, nil
}

// CurrentPosition returns the cached position in user units.
func (a *Adapter) CurrentPosition() float64 {
	a.posMu.RLock()
	defer a.posMu.RUnlock()
	return a.current
}

// TargetPosition returns the last requested move target in user units.
func (a *Adapter) TargetPosition() float64 {
	a.posMu.RLock()
	defer a.posMu.RUnlock()
	return a.target
}

// MoveAbs moves the phase to an absolute target in user units.
//
// The target is clamped to the configured bounds, converted through the
// scaling transform, and written to the device phase field. Driver
// errors propagate to the caller.
func (a *Adapter) MoveAbs(ctx context.Context, target float64) error {
	target = a.bounds.Clamp(target)

	a.posMu.Lock()
	a.target = target
	a.posMu.Unlock()

	raw := a.scaling.ToDevice(target)
	if err := a.drv.SetPhase(ctx, raw); err != nil {
		return fmt.Errorf("writing phase: %w", err)
	}

	a.posMu.Lock()
	a.current = target
	a.posMu.Unlock()

	return nil
}

// MoveRel moves the phase by a delta relative to the current position.
// The absolute target is clamped before the move, so composing relative
// moves never escapes the bounds.
func (a *Adapter) MoveRel(ctx context.Context, delta float64) error {
	a.posMu.RLock()
	current := a.current
	a.posMu.RUnlock()

	return a.MoveAbs(ctx, current+delta)
}

// MoveHome is a no-op: the SR542 has no home or reference operation on
// the phase axis.
func (a *Adapter) MoveHome(_ context.Context) error {
	return nil
}

// Stop halts the chopper motor and resets the run setting to false.
func (a *Adapter) Stop(ctx context.Context) error {
	if err := a.drv.Stop(ctx); err != nil {
		return fmt.Errorf("stopping chopper: %w", err)
	}

	if err := a.settings.Set(SettingRun, false); err != nil {
		return err
	}
	a.persist(ctx, SettingRun, false)

	return nil
}

// CommitSetting validates a setting change, stores it, applies the
// consequence on the device, and persists the new value.
//
// Each recognized setting maps to exactly one device write or
// visibility toggle; see applySetting.
func (a *Adapter) CommitSetting(ctx context.Context, name string, value any) error {
	if err := a.settings.Set(name, value); err != nil {
		return err
	}

	// Re-read the canonical (coerced) value.
	canonical, err := a.settings.Get(name)
	if err != nil {
		return err
	}

	if err := a.applySetting(ctx, name, canonical); err != nil {
		return err
	}

	a.persist(ctx, name, canonical)
	return nil
}

// Close disconnects from the device. Not idempotent: a second Close
// fails against the already-closed handle, matching driver behaviour.
func (a *Adapter) Close(ctx context.Context) error {
	if err := a.drv.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting chopper: %w", err)
	}
	return nil
}

// applySetting forwards one setting value to the device and maintains
// the dependent-visibility rule. Values are assumed canonical (already
// validated by the settings table).
func (a *Adapter) applySetting(ctx context.Context, name string, value any) error {
	switch name {
	case SettingComPort:
		// Stored only; the port is read at the next Initialize.
		return nil

	case SettingSource:
		src := chopper.Source(value.(string))
		if err := a.drv.SetSource(ctx, src); err != nil {
			return err
		}
		// edge only matters for an external reference, internal_freq
		// only for the internal one; hide both otherwise.
		a.settings.SetVisible(SettingEdge, src == chopper.SourceExternal)
		a.settings.SetVisible(SettingInternalFreq, src == chopper.SourceInternal)
		return nil

	case SettingEdge:
		return a.drv.SetSyncEdge(ctx, chopper.SyncEdge(value.(string)))

	case SettingInternalFreq:
		return a.drv.SetInternalFreq(ctx, value.(float64))

	case SettingN, SettingM:
		return a.drv.SetMultiplier(ctx, a.settings.Int(SettingN), a.settings.Int(SettingM))

	case SettingControl:
		return a.drv.SetControlTarget(ctx, chopper.ControlTarget(value.(string)))

	case SettingRun:
		if value.(bool) {
			return a.drv.Run(ctx)
		}
		return a.drv.Stop(ctx)
	}

	return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
}

// persist saves a setting value through the store, logging failures
// rather than failing the commit: the device write already happened.
func (a *Adapter) persist(ctx context.Context, name string, value any) {
	if a.store == nil {
		return
	}
	if err := a.store.Save(ctx, name, value); err != nil {
		a.logError("persisting setting failed", "setting", name, "error", err)
	}
}

func (a *Adapter) logInfo(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}

func (a *Adapter) logWarn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}

func (a *Adapter) logError(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, args...)
	}
}
