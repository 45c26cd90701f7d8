package models

import (
	"encoding/json"
	"fmt"
)

// ExtenderMode selects how the JS portlet extender requirement is declared
type ExtenderMode int

const (
	// ExtenderDefault computes the minimum version from the features in use
	ExtenderDefault ExtenderMode = iota
	// ExtenderDisabled emits no requirement
	ExtenderDisabled
	// ExtenderAny requires the extender without a version constraint
	ExtenderAny
	// ExtenderExplicit requires the configured version verbatim
	ExtenderExplicit
)

// ExtenderAnyValue is the configuration literal selecting ExtenderAny
const ExtenderAnyValue = "any"

// ExtenderSetting is the decoded value of the js-extender feature flag.
// In JSON it is true, false, "any" or a version string.
type ExtenderSetting struct {
	Mode    ExtenderMode
	Version string
}

// ParseExtenderSetting converts a raw string setting into an ExtenderSetting
func ParseExtenderSetting(s string) ExtenderSetting {
	switch s {
	case "", "true":
		return ExtenderSetting{Mode: ExtenderDefault}
	case "false":
		return ExtenderSetting{Mode: ExtenderDisabled}
	case ExtenderAnyValue:
		return ExtenderSetting{Mode: ExtenderAny}
	default:
		return ExtenderSetting{Mode: ExtenderExplicit, Version: s}
	}
}

// String returns the configuration form of the setting
func (s ExtenderSetting) String() string {
	switch s.Mode {
	case ExtenderDisabled:
		return "false"
	case ExtenderAny:
		return ExtenderAnyValue
	case ExtenderExplicit:
		return s.Version
	default:
		return "true"
	}
}

// UnmarshalJSON accepts a boolean or a string
func (s *ExtenderSetting) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*s = ExtenderSetting{Mode: ExtenderDefault}
		} else {
			*s = ExtenderSetting{Mode: ExtenderDisabled}
		}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("js-extender must be a boolean or a string, got %s", data)
	}

	*s = ParseExtenderSetting(str)
	return nil
}
