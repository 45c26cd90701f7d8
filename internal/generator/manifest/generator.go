package manifest

import (
	"context"

	"github.com/ralt/jarbundler/internal/archive"
	"github.com/ralt/jarbundler/internal/generator"
	"github.com/sirupsen/logrus"
)

// Generator writes META-INF/MANIFEST.MF
type Generator struct{}

// NewGenerator creates a new manifest generator
func NewGenerator() generator.Generator {
	return &Generator{}
}

// Generate adds the manifest to the archive
func (g *Generator) Generate(ctx context.Context, in *generator.Input, tree *archive.Tree) error {
	p := in.Project

	req := ResolveExtenderVersion(
		p.Jar.RequireJsExtender,
		in.Configuration.SystemDescriptor() != nil,
		in.Configuration.PortletInstanceDescriptor() != nil,
	)
	if req.Required {
		logrus.Debugf("Requiring extender %s", ExtenderFilter(req.Version))
	}

	m := Build(Input{
		Name:                 p.Name,
		Version:              p.Version,
		Description:          p.Description,
		WebContextPath:       p.Jar.WebContextPath,
		L10nSupported:        p.L10n.Supported,
		LanguageFileBaseName: p.L10n.LanguageFileBaseName,
		Requirement:          req,
		CustomHeaders:        p.Jar.CustomManifestHeaders,
		ToolVersion:          in.ToolVersion,
	})

	tree.Put(generator.ManifestPath, m.Bytes())
	logrus.Debugf("Wrote %s (%d headers)", generator.ManifestPath, len(m.Headers()))
	return nil
}

// Name identifies the stage in logs
func (g *Generator) Name() string {
	return "manifest"
}

