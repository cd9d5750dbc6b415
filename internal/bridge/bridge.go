package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/photonbench/chopperd/internal/actuator"
	"github.com/photonbench/chopperd/internal/infrastructure/mqtt"
)

// MQTTClient is the interface the bridge needs from the MQTT layer.
// Satisfied by *mqtt.Client; a fake stands in for tests.
type MQTTClient interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	IsConnected() bool
}

// Telemetry receives phase readings from the poll loop.
// Satisfied by *influxdb.Client. Optional - nil disables telemetry.
type Telemetry interface {
	WritePhaseReading(instrumentID string, phase, target float64)
}

// Logger is the optional logging interface used by the bridge.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Bridge exposes one actuator adapter over MQTT.
//
// It subscribes to the instrument's command topic, executes commands
// against the adapter, acknowledges every command, and publishes
// retained state and settings documents so late subscribers see the
// current picture. A poll loop reads the device position on a fixed
// interval and feeds telemetry.
type Bridge struct {
	adapter      *actuator.Adapter
	client       MQTTClient
	topics       mqtt.Topics
	instrumentID string
	units        string
	qos          byte
	pollInterval time.Duration
	telemetry    Telemetry
	logger       Logger

	// Shutdown coordination
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// Options configures a new Bridge.
type Options struct {
	// Adapter is the actuator to expose. Required.
	Adapter *actuator.Adapter

	// Client is the MQTT connection. Required.
	Client MQTTClient

	// InstrumentID is the stable identifier used in topics. Required.
	InstrumentID string

	// Units is the user-facing unit label for state messages.
	Units string

	// QoS is the quality of service for publishes and the command
	// subscription.
	QoS byte

	// PollInterval is how often the poll loop reads the device
	// position. 0 disables polling.
	PollInterval time.Duration

	// Telemetry receives phase readings. Optional.
	Telemetry Telemetry

	// Logger is an optional structured logger.
	Logger Logger
}

// New creates a bridge. Call Start to subscribe and begin polling.
func New(opts Options) (*Bridge, error) {
	if opts.Adapter == nil {
		return nil, fmt.Errorf("adapter is required")
	}
	if opts.Client == nil {
		return nil, fmt.Errorf("mqtt client is required")
	}
	if opts.InstrumentID == "" {
		return nil, fmt.Errorf("instrument id is required")
	}

	return &Bridge{
		adapter:      opts.Adapter,
		client:       opts.Client,
		instrumentID: opts.InstrumentID,
		units:        opts.Units,
		qos:          opts.QoS,
		pollInterval: opts.PollInterval,
		telemetry:    opts.Telemetry,
		logger:       opts.Logger,
		done:         make(chan struct{}),
	}, nil
}

// Start subscribes to the command topic, publishes the initial retained
// state and settings documents, and starts the poll loop.
func (b *Bridge) Start(ctx context.Context) error {
	commandTopic := b.topics.InstrumentCommand(b.instrumentID)
	if err := b.client.Subscribe(commandTopic, b.qos, b.handleCommandMessage); err != nil {
		return fmt.Errorf("subscribing to %s: %w", commandTopic, err)
	}

	b.publishSettings()
	b.publishState(ctx)

	if b.pollInterval > 0 {
		b.wg.Add(1)
		go b.pollLoop(ctx)
	}

	b.logInfo("bridge started",
		"instrument_id", b.instrumentID,
		"command_topic", commandTopic,
		"poll_interval", b.pollInterval)
	return nil
}

// Stop shuts down the poll loop and waits for it to exit. Safe to call
// more than once.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
	})
	b.wg.Wait()
}

// pollLoop reads the device position on a fixed interval, refreshing the
// retained state document and feeding telemetry.
func (b *Bridge) pollLoop(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.pollOnce(ctx)
		}
	}
}

func (b *Bridge) pollOnce(ctx context.Context) {
	position, err := b.adapter.Position(ctx)
	if err != nil {
		b.logWarn("position poll failed", "error", err)
		b.publishHealth("degraded")
		return
	}

	if b.telemetry != nil {
		b.telemetry.WritePhaseReading(b.instrumentID, position, b.adapter.TargetPosition())
	}

	b.publishState(ctx)
	b.publishHealth("ok")
}

// handleCommandMessage decodes and executes one command, acknowledging
// the outcome either way. A malformed payload is acknowledged as failed
// when it carries a command ID, and dropped with a log line otherwise.
func (b *Bridge) handleCommandMessage(topic string, payload []byte) error {
	var cmd CommandMessage
	if err := json.Unmarshal(payload, &cmd); err != nil {
		b.logWarn("dropping malformed command", "topic", topic, "error", err)
		return fmt.Errorf("decoding command: %w", err)
	}

	ctx := context.Background()
	position, err := b.executeCommand(ctx, cmd)
	if err != nil {
		b.logWarn("command failed", "command_id", cmd.ID, "action", cmd.Action, "error", err)
		b.publishAck(cmd, AckFailed, nil, err)
		return nil
	}

	b.publishAck(cmd, AckAccepted, position, nil)

	// Every successful command may have moved the device or changed the
	// settings table; refresh both retained documents.
	b.publishState(ctx)
	b.publishSettings()
	return nil
}

// executeCommand dispatches one command to the adapter. For read and
// successful moves it returns the resulting position in user units.
func (b *Bridge) executeCommand(ctx context.Context, cmd CommandMessage) (*float64, error) {
	switch cmd.Action {
	case ActionMoveAbs:
		if cmd.Value == nil {
			return nil, fmt.Errorf("move_abs requires a value")
		}
		if err := b.adapter.MoveAbs(ctx, *cmd.Value); err != nil {
			return nil, err
		}
		pos := b.adapter.CurrentPosition()
		return &pos, nil

	case ActionMoveRel:
		if cmd.Value == nil {
			return nil, fmt.Errorf("move_rel requires a value")
		}
		if err := b.adapter.MoveRel(ctx, *cmd.Value); err != nil {
			return nil, err
		}
		pos := b.adapter.CurrentPosition()
		return &pos, nil

	case ActionHome:
		return nil, b.adapter.MoveHome(ctx)

	case ActionStop:
		return nil, b.adapter.Stop(ctx)

	case ActionSet:
		if cmd.Setting == "" {
			return nil, fmt.Errorf("set requires a setting name")
		}
		return nil, b.adapter.CommitSetting(ctx, cmd.Setting, cmd.SettingValue)

	case ActionRead:
		pos, err := b.adapter.Position(ctx)
		if err != nil {
			return nil, err
		}
		return &pos, nil
	}

	return nil, fmt.Errorf("unknown action %q", cmd.Action)
}

func (b *Bridge) publishAck(cmd CommandMessage, status AckStatus, position *float64, cmdErr error) {
	ack := AckMessage{
		CommandID:    cmd.ID,
		Timestamp:    time.Now().UTC(),
		InstrumentID: b.instrumentID,
		Action:       cmd.Action,
		Status:       status,
		Position:     position,
	}
	if cmdErr != nil {
		ack.Error = cmdErr.Error()
	}

	b.publishJSON(b.topics.InstrumentAck(b.instrumentID), ack, false)
}

func (b *Bridge) publishState(_ context.Context) {
	state := StateMessage{
		InstrumentID: b.instrumentID,
		Timestamp:    time.Now().UTC(),
		Position:     b.adapter.CurrentPosition(),
		Target:       b.adapter.TargetPosition(),
		Units:        b.units,
		Connected:    b.adapter.IsConnected(),
		Running:      b.adapter.Settings().Bool(actuator.SettingRun),
	}

	b.publishJSON(b.topics.InstrumentState(b.instrumentID), state, true)
}

func (b *Bridge) publishSettings() {
	msg := SettingsMessage{
		InstrumentID: b.instrumentID,
		Timestamp:    time.Now().UTC(),
		Settings:     b.adapter.Settings().Snapshot(),
	}

	b.publishJSON(b.topics.InstrumentSettings(b.instrumentID), msg, true)
}

func (b *Bridge) publishHealth(status string) {
	msg := HealthMessage{
		InstrumentID: b.instrumentID,
		Timestamp:    time.Now().UTC(),
		Status:       status,
		Connected:    b.adapter.IsConnected(),
	}

	b.publishJSON(b.topics.InstrumentHealth(b.instrumentID), msg, false)
}

func (b *Bridge) publishJSON(topic string, msg any, retained bool) {
	payload, err := json.Marshal(msg)
	if err != nil {
		b.logError("encoding message failed", "topic", topic, "error", err)
		return
	}
	if err := b.client.Publish(topic, payload, b.qos, retained); err != nil {
		b.logError("publish failed", "topic", topic, "error", err)
	}
}

func (b *Bridge) logInfo(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *Bridge) logWarn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}

func (b *Bridge) logError(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Error(msg, args...)
	}
}
