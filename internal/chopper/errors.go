package chopper

import "errors"

// Domain-specific errors for chopper drivers.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotConnected is returned by operations on a disconnected driver.
	ErrNotConnected = errors.New("chopper: driver not connected")

	// ErrConnectionFailed is returned when the device cannot be reached.
	ErrConnectionFailed = errors.New("chopper: connection failed")

	// ErrInvalidValue is returned when a configuration value is outside
	// the device's accepted domain.
	ErrInvalidValue = errors.New("chopper: invalid configuration value")

	// ErrUnknownDriver is returned when no driver is registered under
	// the requested name.
	ErrUnknownDriver = errors.New("chopper: unknown driver")
)
