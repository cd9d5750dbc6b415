package actuator

import "github.com/photonbench/chopperd/internal/infrastructure/config"

// Transform is the affine scaling between user-facing units and device
// raw degrees: raw = value*Scale + Offset.
//
// A disabled transform is the identity.
type Transform struct {
	Enabled bool
	Scale   float64
	Offset  float64
}

// ToDevice converts a user-facing value to device raw units.
func (t Transform) ToDevice(value float64) float64 {
	if !t.Enabled {
		return value
	}
	return value*t.Scale + t.Offset
}

// FromDevice converts a device raw value to user-facing units.
// Inverse of ToDevice; Scale is validated non-zero at config load.
func (t Transform) FromDevice(raw float64) float64 {
	if !t.Enabled {
		return raw
	}
	return (raw - t.Offset) / t.Scale
}

// Bounds clamps user-facing move targets before scaling.
//
// Disabled bounds pass values through unchanged.
type Bounds struct {
	Enabled bool
	Min     float64
	Max     float64
}

// Clamp restricts value to [Min, Max] when enabled.
func (b Bounds) Clamp(value float64) float64 {
	if !b.Enabled {
		return value
	}
	if value < b.Min {
		return b.Min
	}
	if value > b.Max {
		return b.Max
	}
	return value
}

// ScalingFromConfig builds the Transform and Bounds from the actuator
// section of the configuration.
func ScalingFromConfig(cfg config.ActuatorConfig) (Transform, Bounds) {
	t := Transform{
		Enabled: cfg.Scaling.Enabled,
		Scale:   cfg.Scaling.Scale,
		Offset:  cfg.Scaling.Offset,
	}
	b := Bounds{
		Enabled: cfg.Bounds.Enabled,
		Min:     cfg.Bounds.Min,
		Max:     cfg.Bounds.Max,
	}
	return t, b
}
