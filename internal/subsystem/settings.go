package subsystem

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Settings carries a subsystem's configuration as decoded from the manifest.
// Values stay in cty form until a constructor asks for them, so the contract
// is format-agnostic while keeping the manifest's type information.
type Settings map[string]cty.Value

// Int returns the named setting as an int64, or def when it is absent or null.
func (s Settings) Int(name string, def int64) (int64, error) {
	v, ok := s[name]
	if !ok || v.IsNull() {
		return def, nil
	}
	var out int64
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return 0, fmt.Errorf("setting %q: %w", name, err)
	}
	return out, nil
}

// String returns the named setting as a string, or def when it is absent or null.
func (s Settings) String(name string, def string) (string, error) {
	v, ok := s[name]
	if !ok || v.IsNull() {
		return def, nil
	}
	var out string
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return "", fmt.Errorf("setting %q: %w", name, err)
	}
	return out, nil
}

// Bool returns the named setting as a bool, or def when it is absent or null.
func (s Settings) Bool(name string, def bool) (bool, error) {
	v, ok := s[name]
	if !ok || v.IsNull() {
		return def, nil
	}
	var out bool
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return false, fmt.Errorf("setting %q: %w", name, err)
	}
	return out, nil
}
