package manifest

import (
	"fmt"
	"testing"

	"github.com/ralt/jarbundler/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveExtenderVersion(t *testing.T) {
	defaultSetting := models.ExtenderSetting{Mode: models.ExtenderDefault}
	disabled := models.ExtenderSetting{Mode: models.ExtenderDisabled}
	anyVersion := models.ExtenderSetting{Mode: models.ExtenderAny}
	explicit := models.ExtenderSetting{Mode: models.ExtenderExplicit, Version: "2.3.4"}

	tests := []struct {
		setting models.ExtenderSetting
		system  bool
		portlet bool
		want    Requirement
	}{
		{defaultSetting, false, false, Requirement{}},
		{defaultSetting, true, false, Requirement{Required: true, Version: "1.1.0"}},
		{defaultSetting, false, true, Requirement{Required: true, Version: "1.1.0"}},
		{defaultSetting, true, true, Requirement{Required: true, Version: "1.1.0"}},
		{disabled, false, false, Requirement{}},
		{disabled, true, true, Requirement{}},
		{anyVersion, false, false, Requirement{Required: true}},
		{anyVersion, true, true, Requirement{Required: true}},
		{explicit, false, false, Requirement{Required: true, Version: "2.3.4"}},
		{explicit, true, true, Requirement{Required: true, Version: "2.3.4"}},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%s/system=%t/portlet=%t", tt.setting, tt.system, tt.portlet)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveExtenderVersion(tt.setting, tt.system, tt.portlet))
		})
	}
}
