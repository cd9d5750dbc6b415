package serialports

import (
	"sort"
	"testing"

	"go.bug.st/serial/enumerator"
)

func TestSortedNames(t *testing.T) {
	details := []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB1"},
		{Name: "/dev/ttyACM0"},
		{Name: "/dev/ttyUSB0"},
	}

	names := sortedNames(details)

	want := []string{"/dev/ttyACM0", "/dev/ttyUSB0", "/dev/ttyUSB1"}
	if len(names) != len(want) {
		t.Fatalf("sortedNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSortedNames_Empty(t *testing.T) {
	names := sortedNames(nil)
	if len(names) != 0 {
		t.Errorf("sortedNames(nil) = %v, want empty", names)
	}
}

func TestList_DoesNotError(t *testing.T) {
	// Hosts without serial hardware return an empty list, not an error.
	names, err := List()
	if err != nil {
		t.Skipf("enumeration unavailable on this host: %v", err)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("List() = %v, want sorted", names)
	}
}
