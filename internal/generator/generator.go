package generator

import (
	"context"

	"github.com/ralt/jarbundler/internal/archive"
	"github.com/ralt/jarbundler/internal/configuration"
	"github.com/ralt/jarbundler/internal/models"
)

// Archive layout
const (
	MetaInfDir       = "META-INF"
	ManifestPath     = MetaInfDir + "/MANIFEST.MF"
	ResourcesDir     = MetaInfDir + "/resources"
	ContentDir       = "content"
	MetatypeDir      = "OSGI-INF/metatype"
	FeaturesDir      = "features"
	MetatypeJSONPath = FeaturesDir + "/metatype.json"
	PreferencesPath  = FeaturesDir + "/portlet_preferences.json"
)

// Input is shared by every stage of a single archive build
type Input struct {
	Project *models.Project
	// Parsed once per build
	Configuration *configuration.Configuration
	// Tool version embedded in the manifest
	ToolVersion string
}

// Generator interface for archive stages
type Generator interface {
	// Generate writes this stage's entries into tree
	Generate(ctx context.Context, in *Input, tree *archive.Tree) error

	// Name identifies the stage in logs
	Name() string
}
