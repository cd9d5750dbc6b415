package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/photonbench/chopperd/internal/chopper"
)

func connectedDriver(t *testing.T) *Driver {
	t.Helper()
	d := New()
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return d
}

func TestDefaults(t *testing.T) {
	d := New()

	if d.IsConnected() {
		t.Error("new driver reports connected")
	}
	if d.Source() != chopper.SourceInternal {
		t.Errorf("Source() = %q, want internal", d.Source())
	}
	if d.SyncEdge() != chopper.EdgeRise {
		t.Errorf("SyncEdge() = %q, want rise", d.SyncEdge())
	}
	if d.InternalFreq() != 100.0 {
		t.Errorf("InternalFreq() = %v, want 100", d.InternalFreq())
	}
	if n, m := d.Multiplier(); n != 1 || m != 1 {
		t.Errorf("Multiplier() = %d/%d, want 1/1", n, m)
	}
	if d.ControlTarget() != chopper.ControlOuter {
		t.Errorf("ControlTarget() = %q, want outer", d.ControlTarget())
	}
}

func TestConnectDisconnect(t *testing.T) {
	ctx := context.Background()
	d := New()

	if err := d.Connect(ctx); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !d.IsConnected() {
		t.Error("IsConnected() = false after Connect")
	}

	if err := d.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	if d.IsConnected() {
		t.Error("IsConnected() = true after Disconnect")
	}

	// Second disconnect fails against an already-closed handle.
	if err := d.Disconnect(ctx); !errors.Is(err, chopper.ErrNotConnected) {
		t.Errorf("second Disconnect() error = %v, want ErrNotConnected", err)
	}
}

func TestFailConnect(t *testing.T) {
	d := New()
	d.FailConnect(errors.New("port does not exist"))

	err := d.Connect(context.Background())
	if !errors.Is(err, chopper.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
	if d.IsConnected() {
		t.Error("IsConnected() = true after failed Connect")
	}
}

func TestOperationsRequireConnection(t *testing.T) {
	ctx := context.Background()
	d := New()

	ops := map[string]func() error{
		"SetPhase":         func() error { return d.SetPhase(ctx, 10) },
		"SetSource":        func() error { return d.SetSource(ctx, chopper.SourceVCO) },
		"SetSyncEdge":      func() error { return d.SetSyncEdge(ctx, chopper.EdgeFall) },
		"SetInternalFreq":  func() error { return d.SetInternalFreq(ctx, 50) },
		"SetMultiplier":    func() error { return d.SetMultiplier(ctx, 2, 3) },
		"SetControlTarget": func() error { return d.SetControlTarget(ctx, chopper.ControlInner) },
		"Run":              func() error { return d.Run(ctx) },
		"Stop":             func() error { return d.Stop(ctx) },
	}
	if _, err := d.Phase(ctx); !errors.Is(err, chopper.ErrNotConnected) {
		t.Errorf("Phase() error = %v, want ErrNotConnected", err)
	}

	for name, op := range ops {
		if err := op(); !errors.Is(err, chopper.ErrNotConnected) {
			t.Errorf("%s error = %v, want ErrNotConnected", name, err)
		}
	}
}

func TestPhaseRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := connectedDriver(t)

	if err := d.SetPhase(ctx, 42.5); err != nil {
		t.Fatalf("SetPhase() error = %v", err)
	}
	got, err := d.Phase(ctx)
	if err != nil {
		t.Fatalf("Phase() error = %v", err)
	}
	if got != 42.5 {
		t.Errorf("Phase() = %v, want 42.5", got)
	}
}

func TestSetters_RejectInvalidValues(t *testing.T) {
	ctx := context.Background()
	d := connectedDriver(t)

	tests := []struct {
		name string
		op   func() error
	}{
		{"invalid source", func() error { return d.SetSource(ctx, "bogus") }},
		{"invalid edge", func() error { return d.SetSyncEdge(ctx, "square") }},
		{"zero frequency", func() error { return d.SetInternalFreq(ctx, 0) }},
		{"negative frequency", func() error { return d.SetInternalFreq(ctx, -5) }},
		{"zero multiplier", func() error { return d.SetMultiplier(ctx, 0, 1) }},
		{"invalid control", func() error { return d.SetControlTarget(ctx, "middle") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, chopper.ErrInvalidValue) {
				t.Errorf("error = %v, want ErrInvalidValue", err)
			}
		})
	}
}

func TestRunStop(t *testing.T) {
	ctx := context.Background()
	d := connectedDriver(t)

	if d.IsRunning() {
		t.Error("IsRunning() = true before Run")
	}
	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !d.IsRunning() {
		t.Error("IsRunning() = false after Run")
	}
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if d.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
}

func TestDisconnect_StopsMotor(t *testing.T) {
	ctx := context.Background()
	d := connectedDriver(t)

	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := d.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	if d.IsRunning() {
		t.Error("IsRunning() = true after Disconnect")
	}
}

func TestRegisteredFactory(t *testing.T) {
	drv, err := chopper.New("sim", chopper.Config{})
	if err != nil {
		t.Fatalf("chopper.New(sim) error = %v", err)
	}
	if _, ok := drv.(*Driver); !ok {
		t.Errorf("chopper.New(sim) returned %T, want *sim.Driver", drv)
	}
}
