package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/photonbench/chopperd/internal/chopper"
)

func init() {
	chopper.Register("sim", func(_ chopper.Config) (chopper.Driver, error) {
		return New(), nil
	})
}

// Driver is an in-memory chopper that behaves like a connected SR542.
//
// It powers the default daemon configuration and the test suites: every
// configuration field is stored and readable back, run/stop toggles the
// motor state, and connection failures can be injected.
//
// Thread Safety: all methods are safe for concurrent use.
type Driver struct {
	mu sync.Mutex

	connected  bool
	connectErr error

	phase        float64
	source       chopper.Source
	edge         chopper.SyncEdge
	internalFreq float64
	multN        int
	multM        int
	control      chopper.ControlTarget
	running      bool
}

// New creates a disconnected sim driver with SR542 power-on defaults.
func New() *Driver {
	return &Driver{
		source:       chopper.SourceInternal,
		edge:         chopper.EdgeRise,
		internalFreq: 100.0,
		multN:        1,
		multM:        1,
		control:      chopper.ControlOuter,
	}
}

// FailConnect forces the next Connect call to fail with err.
// Passing nil restores normal behaviour.
func (d *Driver) FailConnect(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectErr = err
}

// Connect opens the simulated connection.
func (d *Driver) Connect(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connectErr != nil {
		return fmt.Errorf("%w: %w", chopper.ErrConnectionFailed, d.connectErr)
	}
	d.connected = true
	return nil
}

// Disconnect closes the simulated connection.
// Disconnecting a driver that is not connected is an error, matching
// the behaviour of the vendor serial driver.
func (d *Driver) Disconnect(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	d.connected = false
	d.running = false
	return nil
}

// IsConnected reports the simulated connection state.
func (d *Driver) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Phase returns the stored phase offset in degrees.
func (d *Driver) Phase(_ context.Context) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return 0, chopper.ErrNotConnected
	}
	return d.phase, nil
}

// SetPhase stores the phase offset in degrees.
func (d *Driver) SetPhase(_ context.Context, deg float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	d.phase = deg
	return nil
}

// SetSource selects the frequency reference.
func (d *Driver) SetSource(_ context.Context, src chopper.Source) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	if !src.Valid() {
		return fmt.Errorf("%w: source %q", chopper.ErrInvalidValue, src)
	}
	d.source = src
	return nil
}

// SetSyncEdge selects the external sync edge.
func (d *Driver) SetSyncEdge(_ context.Context, edge chopper.SyncEdge) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	if !edge.Valid() {
		return fmt.Errorf("%w: edge %q", chopper.ErrInvalidValue, edge)
	}
	d.edge = edge
	return nil
}

// SetInternalFreq sets the internal reference frequency in Hz.
func (d *Driver) SetInternalFreq(_ context.Context, hz float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	if hz <= 0 {
		return fmt.Errorf("%w: internal frequency %v Hz", chopper.ErrInvalidValue, hz)
	}
	d.internalFreq = hz
	return nil
}

// SetMultiplier sets the n/m frequency multiplier ratio.
func (d *Driver) SetMultiplier(_ context.Context, n, m int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	if n < 1 || m < 1 {
		return fmt.Errorf("%w: multiplier %d/%d", chopper.ErrInvalidValue, n, m)
	}
	d.multN = n
	d.multM = m
	return nil
}

// SetControlTarget selects what the control loop regulates.
func (d *Driver) SetControlTarget(_ context.Context, target chopper.ControlTarget) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	if !target.Valid() {
		return fmt.Errorf("%w: control target %q", chopper.ErrInvalidValue, target)
	}
	d.control = target
	return nil
}

// Run starts the simulated motor.
func (d *Driver) Run(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	d.running = true
	return nil
}

// Stop halts the simulated motor.
func (d *Driver) Stop(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return chopper.ErrNotConnected
	}
	d.running = false
	return nil
}

// Inspection accessors used by tests.

// Source returns the currently selected frequency reference.
func (d *Driver) Source() chopper.Source {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source
}

// SyncEdge returns the currently selected sync edge.
func (d *Driver) SyncEdge() chopper.SyncEdge {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.edge
}

// InternalFreq returns the internal reference frequency in Hz.
func (d *Driver) InternalFreq() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.internalFreq
}

// Multiplier returns the n/m multiplier ratio.
func (d *Driver) Multiplier() (n, m int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.multN, d.multM
}

// ControlTarget returns the current control target.
func (d *Driver) ControlTarget() chopper.ControlTarget {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.control
}

// IsRunning reports whether the simulated motor is running.
func (d *Driver) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}
