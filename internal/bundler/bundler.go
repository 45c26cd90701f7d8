// Package bundler assembles the archive of a project from its build output
// and configuration and writes it to disk.
package bundler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ralt/jarbundler/internal/archive"
	"github.com/ralt/jarbundler/internal/configuration"
	"github.com/ralt/jarbundler/internal/generator"
	"github.com/ralt/jarbundler/internal/generator/l10n"
	"github.com/ralt/jarbundler/internal/generator/manifest"
	"github.com/ralt/jarbundler/internal/generator/metatype"
	"github.com/ralt/jarbundler/internal/generator/preferences"
	"github.com/ralt/jarbundler/internal/generator/resources"
	"github.com/ralt/jarbundler/internal/models"
	"github.com/ralt/jarbundler/internal/scanner"
	"github.com/ralt/jarbundler/internal/utils"
	"github.com/ralt/jarbundler/internal/version"
	"github.com/sirupsen/logrus"
)

// Bundler builds the archive of one project
type Bundler struct {
	project     *models.Project
	serialize   archive.SerializeOptions
	transformer preferences.Transformer
	scanner     scanner.Scanner
	toolVersion string
}

// Option configures a Bundler
type Option func(*Bundler)

// WithTimestamp sets the modification time stored for every archive entry
func WithTimestamp(t time.Time) Option {
	return func(b *Bundler) {
		b.serialize.ModTime = t
	}
}

// WithCompressionLevel sets the flate level used for file entries
func WithCompressionLevel(level int) Option {
	return func(b *Bundler) {
		b.serialize.CompressionLevel = level
	}
}

// WithTransformer replaces the portlet preferences transformer
func WithTransformer(t preferences.Transformer) Option {
	return func(b *Bundler) {
		b.transformer = t
	}
}

// WithToolVersion sets the version reported in the manifest Tool header
func WithToolVersion(v string) Option {
	return func(b *Bundler) {
		b.toolVersion = v
	}
}

// WithScanner replaces the file system scanner
func WithScanner(s scanner.Scanner) Option {
	return func(b *Bundler) {
		b.scanner = s
	}
}

// New creates a Bundler for project
func New(project *models.Project, opts ...Option) *Bundler {
	b := &Bundler{
		project:     project,
		serialize:   archive.DefaultSerializeOptions(),
		transformer: preferences.DefaultTransformer{},
		scanner:     scanner.NewFileSystemScanner(),
		toolVersion: version.Version,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// stages returns the generators in the order they write into the tree.
// A later stage wins when two stages write the same path.
func (b *Bundler) stages() []generator.Generator {
	return []generator.Generator{
		manifest.NewGenerator(),
		resources.NewGenerator(b.scanner),
		l10n.NewGenerator(b.scanner),
		metatype.NewGenerator(),
		preferences.NewGenerator(b.transformer),
	}
}

// Assemble runs every stage into a fresh tree without writing anything
func (b *Bundler) Assemble(ctx context.Context) (*archive.Tree, error) {
	if b.project == nil {
		return nil, models.NewError(models.ErrInvalidConfig, "", errors.New("no project"))
	}

	cfg, err := configuration.Load(b.project.ConfigurationFile)
	if err != nil {
		return nil, err
	}

	in := &generator.Input{
		Project:       b.project,
		Configuration: cfg,
		ToolVersion:   b.toolVersion,
	}

	tree := archive.NewTree()
	for _, gen := range b.stages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logrus.Debugf("Running %s stage", gen.Name())
		if err := gen.Generate(ctx, in, tree); err != nil {
			return nil, stageError(gen.Name(), err)
		}
	}

	return tree, nil
}

// Build assembles the archive and writes it to the project's output path.
// Nothing is written unless every stage succeeds.
func (b *Bundler) Build(ctx context.Context) (*models.BuildResult, error) {
	tree, err := b.Assemble(ctx)
	if err != nil {
		return nil, err
	}

	data, err := tree.Serialize(b.serialize)
	if err != nil {
		return nil, models.NewError(models.ErrArchive, "", err)
	}

	out := b.project.Jar.OutputPath()
	if err := utils.WriteFileAtomic(out, data, 0644); err != nil {
		return nil, models.NewError(models.ErrFileOp, out, fmt.Errorf("failed to write archive: %w", err))
	}

	sum := utils.ChecksumBytes(data)
	result := &models.BuildResult{
		ArchivePath: out,
		SizeBytes:   sum.Size,
		EntryCount:  len(tree.Entries()),
		FileCount:   tree.FileCount(),
		SHA256:      sum.SHA256,
	}

	logrus.Infof("Wrote %s (%d files, %d bytes)", out, result.FileCount, result.SizeBytes)
	return result, nil
}

func stageError(stage string, err error) error {
	var bErr *models.BundlerError
	if errors.As(err, &bErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	t := models.ErrMetadataGen
	if stage == "resources" || stage == "l10n" {
		t = models.ErrFileOp
	}
	return models.NewError(t, "", fmt.Errorf("%s stage failed: %w", stage, err))
}
