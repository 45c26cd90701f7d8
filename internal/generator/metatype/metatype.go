// Package metatype turns the system configuration descriptor into an OSGi
// metatype document plus its companion features/metatype.json.
package metatype

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"

	"github.com/ralt/jarbundler/internal/configuration"
	"github.com/ralt/jarbundler/internal/models"
)

// Namespace is the OSGi metatype schema namespace
const Namespace = "http://www.osgi.org/xmlns/metatype/v1.1.0"

// RepeatableCardinality is emitted for repeatable fields
const RepeatableCardinality = "-1000"

// MetaData is the metatype document root
type MetaData struct {
	XMLName       xml.Name  `xml:"metatype:MetaData"`
	XmlnsMetatype string    `xml:"xmlns:metatype,attr"`
	Localization  string    `xml:"localization,attr,omitempty"`
	OCD           OCD       `xml:"OCD"`
	Designate     Designate `xml:"Designate"`
}

// OCD is the object class definition
type OCD struct {
	ID         string `xml:"id,attr"`
	Name       string `xml:"name,attr"`
	Attributes []AD   `xml:"AD"`
}

// AD is an attribute definition
type AD struct {
	ID          string   `xml:"id,attr"`
	Name        string   `xml:"name,attr"`
	Description string   `xml:"description,attr,omitempty"`
	Type        string   `xml:"type,attr"`
	Cardinality string   `xml:"cardinality,attr,omitempty"`
	Required    *bool    `xml:"required,attr"`
	Default     *string  `xml:"default,attr"`
	Options     []Option `xml:"Option"`
}

// Option is a selectable attribute value
type Option struct {
	Label string `xml:"label,attr"`
	Value string `xml:"value,attr"`
}

// Designate binds the definition to a configuration pid
type Designate struct {
	PID    string `xml:"pid,attr"`
	Object Object `xml:"Object"`
}

// Object references an OCD
type Object struct {
	OCDRef string `xml:"ocdref,attr"`
}

// Features is the content of features/metatype.json
type Features struct {
	Category string `json:"category,omitempty"`
}

// New creates an empty metatype document for id
func New(id, name string) *MetaData {
	return &MetaData{
		XmlnsMetatype: Namespace,
		OCD:           OCD{ID: id, Name: name},
		Designate: Designate{
			PID:    id,
			Object: Object{OCDRef: id},
		},
	}
}

// SetLocalization links the document to a resource bundle base path
func (m *MetaData) SetLocalization(localization string) {
	m.Localization = localization
}

// AddAttribute appends an attribute definition for a configuration field
func (m *MetaData) AddAttribute(id string, f *configuration.Field) {
	ad := AD{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Type:        xmlType(f.Type),
		Required:    f.Required,
	}
	if ad.Name == "" {
		ad.Name = id
	}
	if f.Repeatable {
		ad.Cardinality = RepeatableCardinality
	}
	if def, ok := f.DefaultString(); ok {
		ad.Default = &def
	}
	for _, opt := range f.OptionList() {
		ad.Options = append(ad.Options, Option{Label: opt.Label, Value: opt.Value})
	}

	m.OCD.Attributes = append(m.OCD.Attributes, ad)
}

// Marshal renders the document with an XML declaration
func (m *MetaData) Marshal() ([]byte, error) {
	data, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metatype: %w", err)
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// Build creates the metatype document for a system descriptor
func Build(p *models.Project, d *configuration.Descriptor) *MetaData {
	m := New(p.Name, DisplayName(p, d))

	if loc := Localization(p); loc != "" {
		m.SetLocalization(loc)
	}

	_ = d.Fields.Each(func(id string, f *configuration.Field) error {
		if f == nil {
			f = &configuration.Field{}
		}
		m.AddAttribute(id, f)
		return nil
	})

	return m
}

// DisplayName picks the OCD name: the descriptor's own name, else the package
// name when localized (it is then a resource key), else the description, else
// the package name.
func DisplayName(p *models.Project, d *configuration.Descriptor) string {
	switch {
	case d != nil && d.Name != "":
		return d.Name
	case p.L10n.Supported:
		return p.Name
	case p.Description != "":
		return p.Description
	default:
		return p.Name
	}
}

// Localization returns the resource bundle path referenced by the document,
// or "" when localization is not configured
func Localization(p *models.Project) string {
	if !p.L10n.Supported {
		return ""
	}
	return "content/" + filepath.Base(p.L10n.LanguageFileBaseName)
}

// MarshalFeatures renders features/metatype.json for a descriptor
func MarshalFeatures(d *configuration.Descriptor) ([]byte, error) {
	data, err := json.MarshalIndent(Features{Category: d.Category}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func xmlType(t string) string {
	switch t {
	case "boolean":
		return "Boolean"
	case "number":
		return "Integer"
	case "float":
		return "Double"
	case "password":
		return "Password"
	default:
		return "String"
	}
}
