// Package configuration reads the project's configuration description file.
//
// The file is a JSON document with two optional descriptors, "system" and
// "portletInstance". A descriptor only counts as present when it declares at
// least one field; IsPresent is the single place that rule lives.
package configuration

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ralt/jarbundler/internal/models"
)

// Descriptor is a named set of configurable fields
type Descriptor struct {
	Name     string                     `json:"name,omitempty"`
	Category string                     `json:"category,omitempty"`
	Fields   *models.OrderedMap[*Field] `json:"fields,omitempty"`
}

// Configuration holds both optional descriptors of a configuration file
type Configuration struct {
	System          *Descriptor `json:"system,omitempty"`
	PortletInstance *Descriptor `json:"portletInstance,omitempty"`
}

// IsPresent reports whether d exists and declares at least one field
func IsPresent(d *Descriptor) bool {
	return d != nil && d.Fields.Len() > 0
}

// SystemDescriptor returns the system descriptor, or nil when it is absent
func (c *Configuration) SystemDescriptor() *Descriptor {
	if c == nil || !IsPresent(c.System) {
		return nil
	}
	return c.System
}

// PortletInstanceDescriptor returns the portlet instance descriptor, or nil
// when it is absent
func (c *Configuration) PortletInstanceDescriptor() *Descriptor {
	if c == nil || !IsPresent(c.PortletInstance) {
		return nil
	}
	return c.PortletInstance
}

// Load reads and parses the configuration file at path.
// An empty path yields an empty Configuration.
func Load(path string) (*Configuration, error) {
	if path == "" {
		return &Configuration{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewError(models.ErrConfigRead, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, models.NewError(models.ErrConfigParse, path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration document
func Parse(data []byte) (*Configuration, error) {
	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration JSON: %w", err)
	}
	return &cfg, nil
}
