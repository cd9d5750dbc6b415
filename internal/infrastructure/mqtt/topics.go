package mqtt

import "fmt"

// Topic prefixes for the chopperd MQTT surface.
//
// Instrument topics use the flat scheme: chopperd/{category}/{instrument_id}
const (
	// TopicPrefix is the base for all chopperd topics.
	TopicPrefix = "chopperd"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "chopperd/system"
)

// Topics provides builders for chopperd MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.InstrumentState("chopper-01")
//	// Returns: "chopperd/state/chopper-01"
type Topics struct{}

// InstrumentCommand returns the topic the host publishes commands to.
//
// Example: chopperd/command/chopper-01
func (Topics) InstrumentCommand(instrumentID string) string {
	return fmt.Sprintf("%s/command/%s", TopicPrefix, instrumentID)
}

// InstrumentState returns the topic for instrument state updates.
// State messages are retained so late subscribers see the current state.
//
// Example: chopperd/state/chopper-01
func (Topics) InstrumentState(instrumentID string) string {
	return fmt.Sprintf("%s/state/%s", TopicPrefix, instrumentID)
}

// InstrumentAck returns the topic for command acknowledgements.
//
// Example: chopperd/ack/chopper-01
func (Topics) InstrumentAck(instrumentID string) string {
	return fmt.Sprintf("%s/ack/%s", TopicPrefix, instrumentID)
}

// InstrumentSettings returns the topic for the published settings table,
// including per-setting visibility.
//
// Example: chopperd/settings/chopper-01
func (Topics) InstrumentSettings(instrumentID string) string {
	return fmt.Sprintf("%s/settings/%s", TopicPrefix, instrumentID)
}

// InstrumentHealth returns the topic for instrument health status.
//
// Example: chopperd/health/chopper-01
func (Topics) InstrumentHealth(instrumentID string) string {
	return fmt.Sprintf("%s/health/%s", TopicPrefix, instrumentID)
}

// SystemStatus returns the daemon status topic (online/offline, LWT).
//
// Example: chopperd/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllInstrumentCommands returns a pattern matching commands to any instrument.
//
// Pattern: chopperd/command/+
func (Topics) AllInstrumentCommands() string {
	return fmt.Sprintf("%s/command/+", TopicPrefix)
}

// AllInstrumentStates returns a pattern matching all instrument state updates.
//
// Pattern: chopperd/state/+
func (Topics) AllInstrumentStates() string {
	return fmt.Sprintf("%s/state/+", TopicPrefix)
}

// AllTopics returns a pattern matching all chopperd topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: chopperd/#
func (Topics) AllTopics() string {
	return "chopperd/#"
}
