package metatype

import (
	"context"
	"fmt"
	"path"

	"github.com/ralt/jarbundler/internal/archive"
	"github.com/ralt/jarbundler/internal/generator"
	"github.com/sirupsen/logrus"
)

// Generator writes the metatype XML and features/metatype.json
type Generator struct{}

// NewGenerator creates a new metatype generator
func NewGenerator() generator.Generator {
	return &Generator{}
}

// Generate adds the metatype files when a system descriptor is present
func (g *Generator) Generate(ctx context.Context, in *generator.Input, tree *archive.Tree) error {
	d := in.Configuration.SystemDescriptor()
	if d == nil {
		logrus.Debug("No system configuration, skipping metatype")
		return nil
	}

	xmlData, err := Build(in.Project, d).Marshal()
	if err != nil {
		return err
	}

	jsonData, err := MarshalFeatures(d)
	if err != nil {
		return fmt.Errorf("failed to marshal metatype features: %w", err)
	}

	xmlPath := path.Join(generator.MetatypeDir, in.Project.Name+".xml")
	tree.Put(xmlPath, xmlData)
	tree.Put(generator.MetatypeJSONPath, jsonData)

	logrus.Infof("Generated metatype %s (%d fields)", xmlPath, d.Fields.Len())
	return nil
}

// Name identifies the stage in logs
func (g *Generator) Name() string {
	return "metatype"
}
