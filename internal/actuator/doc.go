// Package actuator adapts a chopper driver to the host-facing
// positionable-device contract.
//
// The package owns three concerns:
//
//   - A typed, ordered settings table (com_port, source, edge,
//     internal_freq, n, m, control, run) with per-setting validation
//     and a dependent-visibility rule keyed on the sync source.
//
//   - An affine transform between user-facing units and device degrees,
//     plus optional bounds clamping on move targets.
//
//   - The Adapter itself: Initialize, Position, MoveAbs, MoveRel,
//     MoveHome, Stop, CommitSetting, Close. Each committed setting maps
//     to exactly one driver write; moves write the device phase field.
//
// The adapter is transport-agnostic. The MQTT surface lives in the
// bridge package and persistence in the store subpackage.
package actuator
