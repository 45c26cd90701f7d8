package models

import "path/filepath"

// Project describes the package being bundled and how its archive is laid out
type Project struct {
	// Package metadata
	Name        string
	Version     string
	Description string

	// Directory (absolute) containing the front-end build output
	BuildDir string

	Jar  JarConfig
	L10n L10nConfig

	// Optional path (absolute) to the configuration description file
	ConfigurationFile string
}

// JarConfig contains archive output settings
type JarConfig struct {
	OutputDir      string
	OutputFilename string
	WebContextPath string

	// Emitted after the built-in manifest headers, in file order
	CustomManifestHeaders *OrderedMap[string]

	RequireJsExtender ExtenderSetting
}

// OutputPath returns the full path of the archive file
func (j JarConfig) OutputPath() string {
	return filepath.Join(j.OutputDir, j.OutputFilename)
}

// L10nConfig contains localization settings
type L10nConfig struct {
	Supported bool

	// Absolute path without extension, e.g. /p/features/localization/Language
	LanguageFileBaseName string
}

// BuildResult describes a written archive
type BuildResult struct {
	ArchivePath string
	SizeBytes   int64
	EntryCount  int // folders and files
	FileCount   int
	SHA256      string
}
