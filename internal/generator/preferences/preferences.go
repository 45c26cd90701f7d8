// Package preferences writes features/portlet_preferences.json from the
// portlet instance configuration descriptor.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ralt/jarbundler/internal/archive"
	"github.com/ralt/jarbundler/internal/configuration"
	"github.com/ralt/jarbundler/internal/generator"
	"github.com/ralt/jarbundler/internal/models"
	"github.com/sirupsen/logrus"
)

// Transformer converts a portlet instance descriptor into the preferences
// document understood by the runtime
type Transformer interface {
	Transform(p *models.Project, d *configuration.Descriptor) ([]byte, error)
}

// Document is the output of the default transformer
type Document struct {
	Fields *models.OrderedMap[Preference] `json:"fields"`
}

// Preference describes one portlet preference
type Preference struct {
	Type        string                              `json:"type"`
	Name        string                              `json:"name,omitempty"`
	Description string                              `json:"description,omitempty"`
	Required    *bool                               `json:"required,omitempty"`
	Repeatable  bool                                `json:"repeatable,omitempty"`
	Default     json.RawMessage                     `json:"default,omitempty"`
	Options     *models.OrderedMap[json.RawMessage] `json:"options,omitempty"`
}

// DefaultTransformer normalizes every field, defaulting its type to string
type DefaultTransformer struct{}

// Transform implements Transformer
func (DefaultTransformer) Transform(p *models.Project, d *configuration.Descriptor) ([]byte, error) {
	doc := Document{Fields: models.NewOrderedMap[Preference]()}

	err := d.Fields.Each(func(id string, f *configuration.Field) error {
		if f == nil {
			f = &configuration.Field{}
		}
		pref := Preference{
			Type:        f.Type,
			Name:        f.Name,
			Description: f.Description,
			Required:    f.Required,
			Repeatable:  f.Repeatable,
			Options:     f.Options,
		}
		if pref.Type == "" {
			pref.Type = "string"
		}
		if len(f.Default) > 0 {
			pref.Default = f.Default
		}
		doc.Fields.Set(id, pref)
		return nil
	})
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences of %s: %w", p.Name, err)
	}
	return append(data, '\n'), nil
}

// Generator writes features/portlet_preferences.json
type Generator struct {
	transformer Transformer
}

// NewGenerator creates a new preferences generator. A nil transformer selects
// DefaultTransformer.
func NewGenerator(t Transformer) generator.Generator {
	if t == nil {
		t = DefaultTransformer{}
	}
	return &Generator{transformer: t}
}

// Generate adds the preferences file when a portlet instance descriptor is present
func (g *Generator) Generate(ctx context.Context, in *generator.Input, tree *archive.Tree) error {
	d := in.Configuration.PortletInstanceDescriptor()
	if d == nil {
		logrus.Debug("No portlet instance configuration, skipping preferences")
		return nil
	}

	data, err := g.transformer.Transform(in.Project, d)
	if err != nil {
		return err
	}

	tree.Put(generator.PreferencesPath, data)
	logrus.Infof("Generated %s (%d fields)", generator.PreferencesPath, d.Fields.Len())
	return nil
}

// Name identifies the stage in logs
func (g *Generator) Name() string {
	return "preferences"
}
