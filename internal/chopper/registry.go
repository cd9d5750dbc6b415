package chopper

import (
	"fmt"
	"sort"
	"sync"
)

// Config carries connection parameters to a driver factory.
type Config struct {
	// Port is the serial port name (e.g., "COM3", "/dev/ttyUSB0").
	Port string

	// Baud is the serial baud rate.
	Baud int
}

// Factory constructs a driver from connection parameters.
// The returned driver is not yet connected.
type Factory func(cfg Config) (Driver, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a driver available under the given name.
// Drivers register themselves from an init function:
//
//	func init() {
//	    chopper.Register("sim", func(cfg chopper.Config) (chopper.Driver, error) {
//	        return New(), nil
//	    })
//	}
//
// Register panics if the name is already taken; duplicate registration
// is a programming error, not a runtime condition.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if name == "" {
		panic("chopper: Register called with empty name")
	}
	if factory == nil {
		panic("chopper: Register called with nil factory")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("chopper: Register called twice for driver %q", name))
	}
	registry[name] = factory
}

// New constructs a driver by registered name.
// Returns ErrUnknownDriver if no driver is registered under the name.
func New(name string, cfg Config) (Driver, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownDriver, name, Drivers())
	}
	return factory(cfg)
}

// Drivers returns the sorted names of all registered drivers.
func Drivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
