// Package project loads the descriptor of the package being bundled from its
// package.json and optional .npmbundlerrc.
package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/jarbundler/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	PackageFile = "package.json"
	RCFile      = ".npmbundlerrc"

	DefaultBuildDir          = "build"
	DefaultConfigurationFile = "features/configuration.json"
	DefaultLanguageFile      = "features/localization/Language"

	languageFileExt = ".properties"
)

// Overrides replace settings read from the project files when non-empty
type Overrides struct {
	BuildDir       string
	OutputDir      string
	OutputFilename string
}

type packageJSON struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type rcJSON struct {
	Output    string          `json:"output"`
	CreateJar json.RawMessage `json:"create-jar"`
}

type createJarJSON struct {
	OutputDir             string                     `json:"output-dir"`
	OutputFilename        string                     `json:"output-filename"`
	CustomManifestHeaders *models.OrderedMap[string] `json:"customManifestHeaders"`
	Features              featuresJSON               `json:"features"`
}

type featuresJSON struct {
	JsExtender    *models.ExtenderSetting `json:"js-extender"`
	WebContext    string                  `json:"web-context"`
	Configuration string                  `json:"configuration"`
	Localization  string                  `json:"localization"`
}

// Load reads the project rooted at dir
func Load(ctx context.Context, dir string, o Overrides) (*models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load project canceled: %w", err)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, models.NewError(models.ErrConfigRead, dir, err)
	}

	var pkg packageJSON
	pkgPath := filepath.Join(root, PackageFile)
	if err := readJSON(pkgPath, &pkg, false); err != nil {
		return nil, err
	}
	if pkg.Name == "" || pkg.Version == "" {
		return nil, models.NewError(models.ErrInvalidConfig, pkgPath, errors.New("name and version are required"))
	}

	var rc rcJSON
	if err := readJSON(filepath.Join(root, RCFile), &rc, true); err != nil {
		return nil, err
	}

	var jar createJarJSON
	if err := decodeCreateJar(rc.CreateJar, &jar); err != nil {
		return nil, models.NewError(models.ErrConfigParse, filepath.Join(root, RCFile), err)
	}

	p := &models.Project{
		Name:        pkg.Name,
		Version:     pkg.Version,
		Description: pkg.Description,
		BuildDir:    resolve(root, firstNonEmpty(o.BuildDir, rc.Output, DefaultBuildDir)),
	}

	p.Jar = models.JarConfig{
		OutputFilename:        firstNonEmpty(o.OutputFilename, jar.OutputFilename, fmt.Sprintf("%s-%s.jar", pkg.Name, pkg.Version)),
		WebContextPath:        firstNonEmpty(jar.Features.WebContext, fmt.Sprintf("/%s-%s", pkg.Name, pkg.Version)),
		CustomManifestHeaders: jar.CustomManifestHeaders,
	}
	if outDir := firstNonEmpty(o.OutputDir, jar.OutputDir); outDir != "" {
		p.Jar.OutputDir = resolve(root, outDir)
	} else {
		p.Jar.OutputDir = p.BuildDir
	}
	if jar.Features.JsExtender != nil {
		p.Jar.RequireJsExtender = *jar.Features.JsExtender
	}

	switch {
	case jar.Features.Configuration != "":
		p.ConfigurationFile = resolve(root, jar.Features.Configuration)
	case fileExists(filepath.Join(root, DefaultConfigurationFile)):
		p.ConfigurationFile = filepath.Join(root, DefaultConfigurationFile)
	}

	switch {
	case jar.Features.Localization != "":
		p.L10n.LanguageFileBaseName = resolve(root, jar.Features.Localization)
	case fileExists(filepath.Join(root, DefaultLanguageFile+languageFileExt)):
		p.L10n.LanguageFileBaseName = filepath.Join(root, DefaultLanguageFile)
	}
	p.L10n.Supported = p.L10n.LanguageFileBaseName != ""

	logrus.Debugf("Loaded project %s@%s from %s", p.Name, p.Version, root)
	return p, nil
}

// readJSON decodes the file at path into v. A missing file is an error unless
// optional is set.
func readJSON(path string, v any, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return models.NewError(models.ErrConfigRead, path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return models.NewError(models.ErrConfigParse, path, err)
	}
	return nil
}

// decodeCreateJar accepts the create-jar section as an object or a boolean
func decodeCreateJar(raw json.RawMessage, jar *createJarJSON) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] != '{' {
		var enabled bool
		if err := json.Unmarshal(raw, &enabled); err != nil {
			return fmt.Errorf("create-jar must be an object or a boolean")
		}
		return nil
	}
	return json.Unmarshal(raw, jar)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
