package actuator

import "errors"

// Domain-specific errors for the actuator adapter.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnknownSetting is returned when a setting name is not in the table.
	ErrUnknownSetting = errors.New("actuator: unknown setting")

	// ErrInvalidSettingValue is returned when a value is outside a
	// setting's domain.
	ErrInvalidSettingValue = errors.New("actuator: invalid setting value")
)
