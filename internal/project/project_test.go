package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ralt/jarbundler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageFile), `{"name": "my-widget", "version": "1.0.0", "description": "My Widget"}`)

	p, err := Load(context.Background(), dir, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "my-widget", p.Name)
	assert.Equal(t, "1.0.0", p.Version)
	assert.Equal(t, "My Widget", p.Description)
	assert.Equal(t, filepath.Join(dir, "build"), p.BuildDir)
	assert.Equal(t, filepath.Join(dir, "build"), p.Jar.OutputDir)
	assert.Equal(t, "my-widget-1.0.0.jar", p.Jar.OutputFilename)
	assert.Equal(t, "/my-widget-1.0.0", p.Jar.WebContextPath)
	assert.Equal(t, models.ExtenderDefault, p.Jar.RequireJsExtender.Mode)
	assert.Equal(t, 0, p.Jar.CustomManifestHeaders.Len())
	assert.Empty(t, p.ConfigurationFile)
	assert.False(t, p.L10n.Supported)
}

func TestLoadRCFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageFile), `{"name": "w", "version": "2.0.0"}`)
	writeFile(t, filepath.Join(dir, RCFile), `{
		"output": "dist",
		"create-jar": {
			"output-dir": "out",
			"output-filename": "custom.jar",
			"customManifestHeaders": {"X-B": "b", "X-A": "a"},
			"features": {
				"js-extender": "any",
				"web-context": "/ctx",
				"configuration": "conf/config.json",
				"localization": "i18n/Language"
			}
		}
	}`)

	p, err := Load(context.Background(), dir, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "dist"), p.BuildDir)
	assert.Equal(t, filepath.Join(dir, "out"), p.Jar.OutputDir)
	assert.Equal(t, "custom.jar", p.Jar.OutputFilename)
	assert.Equal(t, "/ctx", p.Jar.WebContextPath)
	assert.Equal(t, []string{"X-B", "X-A"}, p.Jar.CustomManifestHeaders.Keys())
	assert.Equal(t, models.ExtenderAny, p.Jar.RequireJsExtender.Mode)
	assert.Equal(t, filepath.Join(dir, "conf", "config.json"), p.ConfigurationFile)
	assert.True(t, p.L10n.Supported)
	assert.Equal(t, filepath.Join(dir, "i18n", "Language"), p.L10n.LanguageFileBaseName)
}

func TestLoadDetectsDefaultFeatureFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageFile), `{"name": "w", "version": "1.0.0"}`)
	writeFile(t, filepath.Join(dir, "features", "configuration.json"), `{}`)
	writeFile(t, filepath.Join(dir, "features", "localization", "Language.properties"), "k=v")

	p, err := Load(context.Background(), dir, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DefaultConfigurationFile), p.ConfigurationFile)
	assert.True(t, p.L10n.Supported)
	assert.Equal(t, filepath.Join(dir, DefaultLanguageFile), p.L10n.LanguageFileBaseName)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageFile), `{"name": "w", "version": "1.0.0"}`)
	writeFile(t, filepath.Join(dir, RCFile), `{"create-jar": true}`)

	outDir := t.TempDir()
	p, err := Load(context.Background(), dir, Overrides{BuildDir: "b", OutputDir: outDir, OutputFilename: "o.jar"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "b"), p.BuildDir)
	assert.Equal(t, outDir, p.Jar.OutputDir)
	assert.Equal(t, "o.jar", p.Jar.OutputFilename)
}

func TestLoadExtenderDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageFile), `{"name": "w", "version": "1.0.0"}`)
	writeFile(t, filepath.Join(dir, RCFile), `{"create-jar": {"features": {"js-extender": false}}}`)

	p, err := Load(context.Background(), dir, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, models.ExtenderDisabled, p.Jar.RequireJsExtender.Mode)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		rc      string
		errType models.ErrorType
	}{
		{"missing package.json", "", "", models.ErrConfigRead},
		{"invalid package.json", `{`, "", models.ErrConfigParse},
		{"missing version", `{"name": "w"}`, "", models.ErrInvalidConfig},
		{"invalid rc", `{"name": "w", "version": "1"}`, `{"create-jar": `, models.ErrConfigParse},
		{"invalid create-jar", `{"name": "w", "version": "1"}`, `{"create-jar": "yes"}`, models.ErrConfigParse},
		{"invalid js-extender", `{"name": "w", "version": "1"}`, `{"create-jar": {"features": {"js-extender": 1}}}`, models.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.pkg != "" {
				writeFile(t, filepath.Join(dir, PackageFile), tt.pkg)
			}
			if tt.rc != "" {
				writeFile(t, filepath.Join(dir, RCFile), tt.rc)
			}

			_, err := Load(context.Background(), dir, Overrides{})
			require.Error(t, err)

			var bErr *models.BundlerError
			require.True(t, errors.As(err, &bErr), "unexpected error %v", err)
			assert.Equal(t, tt.errType, bErr.Type)
		})
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, t.TempDir(), Overrides{})
	assert.ErrorIs(t, err, context.Canceled)
}
