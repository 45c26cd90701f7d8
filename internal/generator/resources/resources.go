// Package resources packs the front-end build output under META-INF/resources.
package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/ralt/jarbundler/internal/archive"
	"github.com/ralt/jarbundler/internal/generator"
	"github.com/ralt/jarbundler/internal/scanner"
	"github.com/sirupsen/logrus"
)

// Generator copies every build artifact into the archive
type Generator struct {
	scanner scanner.Scanner
}

// NewGenerator creates a new resources generator
func NewGenerator(s scanner.Scanner) generator.Generator {
	return &Generator{scanner: s}
}

// Generate adds the build directory's files. The archive's own file name is
// excluded so a previous run's output is never packed into the next one.
func (g *Generator) Generate(ctx context.Context, in *generator.Input, tree *archive.Tree) error {
	p := in.Project

	exclude := []string{glob.QuoteMeta(p.Jar.OutputFilename)}
	if rel, ok := relativeOutput(p.BuildDir, p.Jar.OutputPath()); ok {
		exclude = append(exclude, glob.QuoteMeta(rel))
	}

	n, err := AddFiles(ctx, g.scanner, p.BuildDir, []string{scanner.MatchAll}, exclude, tree.Dir(generator.ResourcesDir))
	if err != nil {
		return err
	}

	logrus.Infof("Added %d build files from %s", n, p.BuildDir)
	return nil
}

// Name identifies the stage in logs
func (g *Generator) Name() string {
	return "resources"
}

// AddFiles copies the files of srcDir matching include and not exclude into
// dest, keeping their relative paths. It returns the number of files added.
func AddFiles(ctx context.Context, s scanner.Scanner, srcDir string, include, exclude []string, dest *archive.Folder) (int, error) {
	files, err := s.Scan(ctx, srcDir, include, exclude)
	if err != nil {
		return 0, err
	}

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", f.Path, err)
		}
		dest.Put(f.RelPath, data)
	}

	return len(files), nil
}

// relativeOutput returns the archive's own path relative to the build
// directory when it lies inside it
func relativeOutput(buildDir, outputPath string) (string, bool) {
	rel, err := filepath.Rel(buildDir, outputPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
