package chopper

import "context"

// Source selects the chopper's frequency reference.
type Source string

// Valid frequency sources.
const (
	SourceInternal Source = "internal"
	SourceVCO      Source = "vco"
	SourceLine     Source = "line"
	SourceExternal Source = "external"
)

// Valid reports whether s is a recognised source.
func (s Source) Valid() bool {
	switch s {
	case SourceInternal, SourceVCO, SourceLine, SourceExternal:
		return true
	}
	return false
}

// SyncEdge selects which edge of an external sync signal the chopper
// locks to. Only meaningful when the source is external.
type SyncEdge string

// Valid sync edges.
const (
	EdgeRise SyncEdge = "rise"
	EdgeFall SyncEdge = "fall"
	EdgeSine SyncEdge = "sine"
)

// Valid reports whether e is a recognised sync edge.
func (e SyncEdge) Valid() bool {
	switch e {
	case EdgeRise, EdgeFall, EdgeSine:
		return true
	}
	return false
}

// ControlTarget selects which part of the two-slot wheel the frequency
// control loop regulates.
type ControlTarget string

// Valid control targets.
const (
	ControlShaft ControlTarget = "shaft"
	ControlInner ControlTarget = "inner"
	ControlOuter ControlTarget = "outer"
)

// Valid reports whether t is a recognised control target.
func (t ControlTarget) Valid() bool {
	switch t {
	case ControlShaft, ControlInner, ControlOuter:
		return true
	}
	return false
}

// Driver is the capability contract a vendor chopper driver must satisfy.
//
// The driver owns all device communication: serial framing, command
// protocol, timeouts, and retries happen behind this interface. Callers
// hold exactly one connected driver per physical device.
//
// All methods except IsConnected return ErrNotConnected when called on a
// driver that is not connected.
type Driver interface {
	// Connect opens the connection to the device.
	Connect(ctx context.Context) error

	// Disconnect closes the connection. Disconnecting a driver that is
	// not connected is an error.
	Disconnect(ctx context.Context) error

	// IsConnected reports the driver's own view of connectivity.
	IsConnected() bool

	// Phase returns the shaft phase offset in degrees (device raw units).
	Phase(ctx context.Context) (float64, error)

	// SetPhase writes the shaft phase offset in degrees (device raw units).
	SetPhase(ctx context.Context, deg float64) error

	// SetSource selects the frequency reference.
	SetSource(ctx context.Context, src Source) error

	// SetSyncEdge selects the external sync edge.
	SetSyncEdge(ctx context.Context, edge SyncEdge) error

	// SetInternalFreq sets the internal reference frequency in Hz.
	SetInternalFreq(ctx context.Context, hz float64) error

	// SetMultiplier sets the n/m frequency multiplier ratio.
	SetMultiplier(ctx context.Context, n, m int) error

	// SetControlTarget selects what the control loop regulates.
	SetControlTarget(ctx context.Context, target ControlTarget) error

	// Run starts the chopper motor.
	Run(ctx context.Context) error

	// Stop halts the chopper motor.
	Stop(ctx context.Context) error
}
