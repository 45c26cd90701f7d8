package manifest

import (
	"fmt"

	"github.com/ralt/jarbundler/internal/models"
)

// Requirement is the resolved extender requirement
type Requirement struct {
	Required bool
	// Minimum extender version; empty means any version
	Version string
}

// ResolveExtenderVersion computes the extender requirement for a bundle.
//
// The default setting declares the lowest extender version supporting every
// optional feature in use: system and portlet instance configuration both need
// 1.1.0. A bundle using neither declares nothing.
func ResolveExtenderVersion(setting models.ExtenderSetting, systemPresent, portletPresent bool) Requirement {
	switch setting.Mode {
	case models.ExtenderDisabled:
		return Requirement{}
	case models.ExtenderExplicit:
		return Requirement{Required: true, Version: setting.Version}
	case models.ExtenderAny:
		return Requirement{Required: true}
	}

	minor := 0
	if systemPresent {
		minor = max(minor, 1)
	}
	if portletPresent {
		minor = max(minor, 1)
	}

	if minor == 0 {
		return Requirement{}
	}
	return Requirement{Required: true, Version: fmt.Sprintf("1.%d.0", minor)}
}
