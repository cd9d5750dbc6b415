package chopper

import (
	"context"
	"errors"
	"testing"
)

// stubDriver is a minimal Driver for registry tests.
type stubDriver struct{ Driver }

func (stubDriver) Connect(_ context.Context) error { return nil }

func TestRegisterAndNew(t *testing.T) {
	Register("registry-test", func(_ Config) (Driver, error) {
		return stubDriver{}, nil
	})

	drv, err := New("registry-test", Config{Port: "COM3", Baud: 115200})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if drv == nil {
		t.Fatal("New() returned nil driver")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New("no-such-driver", Config{})
	if !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("New() error = %v, want ErrUnknownDriver", err)
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()

	Register("registry-dup", func(_ Config) (Driver, error) { return stubDriver{}, nil })
	Register("registry-dup", func(_ Config) (Driver, error) { return stubDriver{}, nil })
}

func TestRegister_EmptyNamePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on empty name")
		}
	}()

	Register("", func(_ Config) (Driver, error) { return stubDriver{}, nil })
}

func TestEnumValidity(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		check func() bool
	}{
		{"source internal", true, Source("internal").Valid},
		{"source external", true, Source("external").Valid},
		{"source bogus", false, Source("bogus").Valid},
		{"edge rise", true, SyncEdge("rise").Valid},
		{"edge sine", true, SyncEdge("sine").Valid},
		{"edge bogus", false, SyncEdge("square").Valid},
		{"control outer", true, ControlTarget("outer").Valid},
		{"control bogus", false, ControlTarget("middle").Valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
