// Package manifest builds the bundle's META-INF/MANIFEST.MF.
package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/ralt/jarbundler/internal/models"
)

// ExtenderID is the capability namespace value of the JS portlet extender
const ExtenderID = "liferay.frontend.js.portlet"

// ToolName prefixes the Tool header
const ToolName = "jarbundler"

// Header is a single manifest line
type Header struct {
	Key   string
	Value string
}

// Manifest is an ordered list of headers. Keys may repeat.
type Manifest struct {
	headers []Header
}

// Input holds everything the manifest depends on
type Input struct {
	Name        string
	Version     string
	Description string

	WebContextPath string

	L10nSupported        bool
	LanguageFileBaseName string

	Requirement Requirement

	CustomHeaders *models.OrderedMap[string]

	ToolVersion string
}

// Add appends a header
func (m *Manifest) Add(key, value string) {
	m.headers = append(m.headers, Header{Key: key, Value: value})
}

// Headers returns the headers in emission order
func (m *Manifest) Headers() []Header {
	return append([]Header(nil), m.headers...)
}

// Bytes renders the manifest, one "Key: value" line per header
func (m *Manifest) Bytes() []byte {
	var buf bytes.Buffer
	for _, h := range m.headers {
		fmt.Fprintf(&buf, "%s: %s\n", h.Key, h.Value)
	}
	return buf.Bytes()
}

// Build creates the manifest for in
func Build(in Input) *Manifest {
	m := &Manifest{}

	m.Add("Manifest-Version", "1.0")
	m.Add("Bundle-ManifestVersion", "2")
	m.Add("Tool", fmt.Sprintf("%s-%s", ToolName, in.ToolVersion))
	m.Add("Bundle-SymbolicName", in.Name)
	m.Add("Bundle-Version", in.Version)
	if in.Description != "" {
		m.Add("Bundle-Name", in.Description)
	}
	m.Add("Web-ContextPath", in.WebContextPath)

	m.Add("Provide-Capability", fmt.Sprintf(
		`osgi.webresource;osgi.webresource=%s;version:Version="%s"`, in.Name, in.Version))

	if in.L10nSupported {
		m.Add("Provide-Capability", fmt.Sprintf(
			`liferay.resource.bundle;resource.bundle.base.name="content.%s"`,
			filepath.Base(in.LanguageFileBaseName)))
	}

	if in.Requirement.Required {
		m.Add("Require-Capability", fmt.Sprintf(`osgi.extender;filter:="%s"`, ExtenderFilter(in.Requirement.Version)))
	}

	_ = in.CustomHeaders.Each(func(key, value string) error {
		m.Add(key, value)
		return nil
	})

	return m
}

// ExtenderFilter returns the LDAP filter selecting the extender
func ExtenderFilter(version string) string {
	if version == "" {
		return fmt.Sprintf("(osgi.extender=%s)", ExtenderID)
	}
	return fmt.Sprintf("(&(osgi.extender=%s)(version>=%s))", ExtenderID, version)
}
