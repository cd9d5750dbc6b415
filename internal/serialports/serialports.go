package serialports

import (
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes a serial port discovered on the host.
type PortInfo struct {
	// Name is the OS port name (e.g., "COM3", "/dev/ttyUSB0").
	Name string

	// IsUSB reports whether the port is backed by a USB adapter.
	IsUSB bool

	// VID and PID identify the USB device (empty for non-USB ports).
	VID string
	PID string

	// SerialNumber is the USB serial number, if exposed.
	SerialNumber string
}

// List returns the names of all serial ports on the host, sorted.
//
// The SR542 ships with an FTDI USB-serial bridge; if the port does not
// appear here the FTDI VCP driver is likely missing.
func List() ([]string, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerating serial ports: %w", err)
	}
	return sortedNames(details), nil
}

// ListDetailed returns full details for all serial ports on the host,
// sorted by port name.
func ListDetailed() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerating serial ports: %w", err)
	}

	infos := make([]PortInfo, 0, len(details))
	for _, d := range details {
		infos = append(infos, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// sortedNames extracts sorted port names from enumerator details.
func sortedNames(details []*enumerator.PortDetails) []string {
	names := make([]string, 0, len(details))
	for _, d := range details {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
