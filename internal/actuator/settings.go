package actuator

import (
	"fmt"
	"sync"
)

// Setting names. These are the wire names used in commands, persistence,
// and the published settings table.
const (
	SettingComPort      = "com_port"
	SettingSource       = "source"
	SettingEdge         = "edge"
	SettingInternalFreq = "internal_freq"
	SettingN            = "n"
	SettingM            = "m"
	SettingControl      = "control"
	SettingRun          = "run"
)

// SettingType describes the domain of a setting's value.
type SettingType string

// Setting value domains.
const (
	TypeList  SettingType = "list"
	TypeFloat SettingType = "float"
	TypeInt   SettingType = "int"
	TypeBool  SettingType = "bool"
)

// Setting is one named option in the actuator's settings table.
type Setting struct {
	// Name is the stable wire name.
	Name string `json:"name"`

	// Title is the human-readable label.
	Title string `json:"title"`

	// Type describes the value domain.
	Type SettingType `json:"type"`

	// Options enumerates the allowed values for list settings.
	// An empty Options slice accepts any string (used for com_port when
	// no ports were discovered).
	Options []string `json:"options,omitempty"`

	// MinInt is the lower bound for int settings.
	MinInt int `json:"min_int,omitempty"`

	// Value is the current value. Concrete type follows Type:
	// string for list, float64 for float, int for int, bool for bool.
	Value any `json:"value"`

	// Visible reports whether the host UI should show this setting.
	Visible bool `json:"visible"`
}

// Settings is the ordered settings table of the actuator.
//
// Order matters: Initialize applies settings in declaration order, so
// source is committed before edge and internal_freq.
//
// Thread Safety: all methods are safe for concurrent use.
type Settings struct {
	mu      sync.RWMutex
	ordered []*Setting
	byName  map[string]*Setting
}

// DefaultSettings builds the settings table with SR542 power-on defaults.
//
// comPorts is the discovered serial port list; the first entry becomes
// the default com_port value, matching how an operator would see the
// table on first launch.
func DefaultSettings(comPorts []string) *Settings {
	defaultPort := ""
	if len(comPorts) > 0 {
		defaultPort = comPorts[0]
	}

	ordered := []*Setting{
		{Name: SettingComPort, Title: "COM port", Type: TypeList, Options: comPorts, Value: defaultPort, Visible: true},
		{Name: SettingSource, Title: "Source", Type: TypeList, Options: []string{"internal", "vco", "line", "external"}, Value: "internal", Visible: true},
		{Name: SettingEdge, Title: "Edge", Type: TypeList, Options: []string{"rise", "fall", "sine"}, Value: "rise", Visible: false},
		{Name: SettingInternalFreq, Title: "Internal Frequency", Type: TypeFloat, Value: 100.0, Visible: true},
		{Name: SettingN, Title: "Multiplier n", Type: TypeInt, MinInt: 1, Value: 1, Visible: true},
		{Name: SettingM, Title: "Multiplier m", Type: TypeInt, MinInt: 1, Value: 1, Visible: true},
		{Name: SettingControl, Title: "Control", Type: TypeList, Options: []string{"shaft", "inner", "outer"}, Value: "outer", Visible: true},
		{Name: SettingRun, Title: "Run/Stop", Type: TypeBool, Value: false, Visible: true},
	}

	byName := make(map[string]*Setting, len(ordered))
	for _, s := range ordered {
		byName[s.Name] = s
	}

	return &Settings{ordered: ordered, byName: byName}
}

// Names returns the setting names in declaration order.
func (s *Settings) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.ordered))
	for i, setting := range s.ordered {
		names[i] = setting.Name
	}
	return names
}

// Get returns the current value of a setting.
func (s *Settings) Get(name string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	setting, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return setting.Value, nil
}

// Set validates a value against the setting's domain and stores it.
// Numeric values arriving from JSON (always float64) are coerced to the
// setting's declared type.
func (s *Settings) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}

	coerced, err := coerceValue(setting, value)
	if err != nil {
		return err
	}
	setting.Value = coerced
	return nil
}

// Visible reports whether a setting is currently visible.
func (s *Settings) Visible(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	setting, ok := s.byName[name]
	return ok && setting.Visible
}

// SetVisible shows or hides a setting.
func (s *Settings) SetVisible(name string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if setting, ok := s.byName[name]; ok {
		setting.Visible = visible
	}
}

// Snapshot returns a copy of the table in declaration order, safe for
// serialisation while the adapter keeps mutating the live table.
func (s *Settings) Snapshot() []Setting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Setting, len(s.ordered))
	for i, setting := range s.ordered {
		cpy := *setting
		if setting.Options != nil {
			cpy.Options = append([]string(nil), setting.Options...)
		}
		out[i] = cpy
	}
	return out
}

// String returns the string value of a list setting.
func (s *Settings) String(name string) string {
	v, err := s.Get(name)
	if err != nil {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Float returns the float64 value of a float setting.
func (s *Settings) Float(name string) float64 {
	v, err := s.Get(name)
	if err != nil {
		return 0
	}
	f, _ := v.(float64)
	return f
}

// Int returns the int value of an int setting.
func (s *Settings) Int(name string) int {
	v, err := s.Get(name)
	if err != nil {
		return 0
	}
	i, _ := v.(int)
	return i
}

// Bool returns the bool value of a bool setting.
func (s *Settings) Bool(name string) bool {
	v, err := s.Get(name)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// coerceValue validates value against the setting's domain and converts
// it to the canonical Go type for that domain.
func coerceValue(setting *Setting, value any) (any, error) {
	switch setting.Type {
	case TypeList:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidSettingValue, setting.Name, value)
		}
		if len(setting.Options) == 0 {
			return str, nil
		}
		for _, opt := range setting.Options {
			if str == opt {
				return str, nil
			}
		}
		return nil, fmt.Errorf("%w: %s must be one of %v, got %q", ErrInvalidSettingValue, setting.Name, setting.Options, str)

	case TypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		return nil, fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidSettingValue, setting.Name, value)

	case TypeInt:
		var i int
		switch v := value.(type) {
		case int:
			i = v
		case float64:
			// JSON numbers arrive as float64; reject fractional values.
			if v != float64(int(v)) {
				return nil, fmt.Errorf("%w: %s expects an integer, got %v", ErrInvalidSettingValue, setting.Name, v)
			}
			i = int(v)
		default:
			return nil, fmt.Errorf("%w: %s expects an integer, got %T", ErrInvalidSettingValue, setting.Name, value)
		}
		if i < setting.MinInt {
			return nil, fmt.Errorf("%w: %s must be >= %d, got %d", ErrInvalidSettingValue, setting.Name, setting.MinInt, i)
		}
		return i, nil

	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidSettingValue, setting.Name, value)
		}
		return b, nil
	}

	return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidSettingValue, setting.Name, setting.Type)
}
