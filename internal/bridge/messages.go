package bridge

import (
	"time"

	"github.com/photonbench/chopperd/internal/actuator"
)

// Command actions accepted on the command topic.
const (
	ActionMoveAbs = "move_abs"
	ActionMoveRel = "move_rel"
	ActionHome    = "home"
	ActionStop    = "stop"
	ActionSet     = "set"
	ActionRead    = "read"
)

// CommandMessage is received on chopperd/command/{instrument_id}.
type CommandMessage struct {
	// ID correlates the command with its acknowledgment.
	ID string `json:"id"`

	// Timestamp is when the command was issued (UTC).
	Timestamp time.Time `json:"timestamp"`

	// Action is one of the Action* constants.
	Action string `json:"action"`

	// Value is the move target or delta, in user units.
	// Required for move_abs and move_rel.
	Value *float64 `json:"value,omitempty"`

	// Setting names the setting to change. Required for set.
	Setting string `json:"setting,omitempty"`

	// SettingValue is the new setting value. Required for set.
	SettingValue any `json:"setting_value,omitempty"`
}

// AckStatus is the outcome of a command.
type AckStatus string

const (
	// AckAccepted indicates the command executed against the device.
	AckAccepted AckStatus = "accepted"

	// AckFailed indicates the command was rejected or the device errored.
	AckFailed AckStatus = "failed"
)

// AckMessage is published on chopperd/ack/{instrument_id} after every
// command, success or failure.
type AckMessage struct {
	// CommandID is the ID from the original command.
	CommandID string `json:"command_id"`

	// Timestamp is when the acknowledgment was sent (UTC).
	Timestamp time.Time `json:"timestamp"`

	// InstrumentID identifies the chopper.
	InstrumentID string `json:"instrument_id"`

	// Action echoes the command action.
	Action string `json:"action"`

	// Status is the outcome.
	Status AckStatus `json:"status"`

	// Position is the phase after the command, in user units.
	// Present for read and successful moves.
	Position *float64 `json:"position,omitempty"`

	// Error describes the failure when status is "failed".
	Error string `json:"error,omitempty"`
}

// StateMessage is published retained on chopperd/state/{instrument_id}.
type StateMessage struct {
	InstrumentID string    `json:"instrument_id"`
	Timestamp    time.Time `json:"timestamp"`

	// Position is the last known phase in user units.
	Position float64 `json:"position"`

	// Target is the last requested move target in user units.
	Target float64 `json:"target"`

	// Units is the user-facing unit label.
	Units string `json:"units"`

	// Connected reports device connectivity.
	Connected bool `json:"connected"`

	// Running reports whether the chopper motor is on.
	Running bool `json:"running"`
}

// SettingsMessage is published retained on chopperd/settings/{instrument_id}
// whenever the settings table changes, including visibility changes.
type SettingsMessage struct {
	InstrumentID string             `json:"instrument_id"`
	Timestamp    time.Time          `json:"timestamp"`
	Settings     []actuator.Setting `json:"settings"`
}

// HealthMessage is published on chopperd/health/{instrument_id} on every
// poll tick.
type HealthMessage struct {
	InstrumentID string    `json:"instrument_id"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	Connected    bool      `json:"connected"`
}
