// Package chopper defines the driver contract for SR542-class optical
// choppers and a registry for driver implementations.
//
// The Driver interface is the boundary between this service and vendor
// device code: everything behind it (serial framing, the instrument's
// command protocol, timeouts) belongs to the driver implementation.
// Everything in front of it (settings bookkeeping, scaling, the MQTT
// surface) belongs to this repository and is driver-agnostic.
//
// Implementations register themselves by name; the daemon selects one
// via instrument.driver in the config. The sim subpackage provides a
// full in-memory implementation used by default and in tests.
package chopper
