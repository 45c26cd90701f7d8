// Package l10n copies the localization resource bundle into the archive.
package l10n

import (
	"context"
	"path/filepath"

	"github.com/ralt/jarbundler/internal/archive"
	"github.com/ralt/jarbundler/internal/generator"
	"github.com/ralt/jarbundler/internal/generator/resources"
	"github.com/ralt/jarbundler/internal/scanner"
	"github.com/sirupsen/logrus"
)

// Generator copies the language files under content/
type Generator struct {
	scanner scanner.Scanner
}

// NewGenerator creates a new localization generator
func NewGenerator(s scanner.Scanner) generator.Generator {
	return &Generator{scanner: s}
}

// Generate copies every file next to the language base file. All files are
// taken, whatever their type.
func (g *Generator) Generate(ctx context.Context, in *generator.Input, tree *archive.Tree) error {
	base := in.Project.L10n.LanguageFileBaseName
	if base == "" {
		logrus.Debug("Localization not configured, skipping")
		return nil
	}

	dir := filepath.Dir(base)
	n, err := resources.AddFiles(ctx, g.scanner, dir, []string{scanner.MatchAll}, nil, tree.Dir(generator.ContentDir))
	if err != nil {
		return err
	}

	logrus.Infof("Added %d localization files from %s", n, dir)
	return nil
}

// Name identifies the stage in logs
func (g *Generator) Name() string {
	return "l10n"
}
