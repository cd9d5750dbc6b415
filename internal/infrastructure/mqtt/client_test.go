package mqtt

import (
	"errors"
	"testing"
)

// newDisconnectedClient builds a Client that was never connected.
// Validation paths must reject operations before touching the network.
func newDisconnectedClient() *Client {
	return &Client{
		subscriptions: make(map[string]subscription),
	}
}

func TestPublish_Validation(t *testing.T) {
	c := newDisconnectedClient()

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{
			name:    "empty topic",
			topic:   "",
			payload: []byte("{}"),
			qos:     1,
			wantErr: ErrInvalidTopic,
		},
		{
			name:    "invalid qos",
			topic:   "chopperd/state/chopper-01",
			payload: []byte("{}"),
			qos:     3,
			wantErr: ErrInvalidQoS,
		},
		{
			name:    "oversized payload",
			topic:   "chopperd/state/chopper-01",
			payload: make([]byte, maxPayloadSize+1),
			qos:     1,
			wantErr: ErrPublishFailed,
		},
		{
			name:    "not connected",
			topic:   "chopperd/state/chopper-01",
			payload: []byte("{}"),
			qos:     1,
			wantErr: ErrNotConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubscribe_Validation(t *testing.T) {
	c := newDisconnectedClient()
	handler := func(_ string, _ []byte) error { return nil }

	if err := c.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Subscribe(empty topic) error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Subscribe("chopperd/command/+", 3, handler); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Subscribe(qos 3) error = %v, want ErrInvalidQoS", err)
	}
	if err := c.Subscribe("chopperd/command/+", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("Subscribe(nil handler) error = %v, want ErrSubscribeFailed", err)
	}
	if err := c.Subscribe("chopperd/command/+", 1, handler); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Subscribe(disconnected) error = %v, want ErrNotConnected", err)
	}
}

func TestSubscriptionTracking(t *testing.T) {
	c := newDisconnectedClient()

	if c.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", c.SubscriptionCount())
	}
	if c.HasSubscription("chopperd/command/chopper-01") {
		t.Error("HasSubscription() = true for untracked topic")
	}
}

func TestClose_NeverConnected(t *testing.T) {
	c := newDisconnectedClient()

	if err := c.Close(); err != nil {
		t.Errorf("Close() on never-connected client error = %v", err)
	}
}

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"command", topics.InstrumentCommand("chopper-01"), "chopperd/command/chopper-01"},
		{"state", topics.InstrumentState("chopper-01"), "chopperd/state/chopper-01"},
		{"ack", topics.InstrumentAck("chopper-01"), "chopperd/ack/chopper-01"},
		{"settings", topics.InstrumentSettings("chopper-01"), "chopperd/settings/chopper-01"},
		{"health", topics.InstrumentHealth("chopper-01"), "chopperd/health/chopper-01"},
		{"system status", topics.SystemStatus(), "chopperd/system/status"},
		{"all commands", topics.AllInstrumentCommands(), "chopperd/command/+"},
		{"all states", topics.AllInstrumentStates(), "chopperd/state/+"},
		{"all", topics.AllTopics(), "chopperd/#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
