// Package store persists actuator settings across daemon restarts.
//
// It is a thin repository over the settings table: one row per setting,
// value stored as JSON. The actuator adapter saves through the
// SettingsStore interface after every committed change, and the daemon
// restores the persisted values into the settings table at startup,
// before Initialize pushes them to the device.
package store
