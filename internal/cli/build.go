package cli

import (
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/ralt/jarbundler/internal/bundler"
	"github.com/ralt/jarbundler/internal/models"
	"github.com/ralt/jarbundler/internal/project"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag names, also the viper keys
const (
	flagProjectDir       = "project-dir"
	flagBuildDir         = "build-dir"
	flagOutputDir        = "output-dir"
	flagOutputFilename   = "output-filename"
	flagCompressionLevel = "compression-level"
)

// NewBuildCmd creates the build command
func NewBuildCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the project's JAR archive",
		Long: `Packs the project's build directory, manifest, metatype and
localization files into a single JAR archive.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level := v.GetInt(flagCompressionLevel)
			if level < flate.HuffmanOnly || level > flate.BestCompression {
				return models.NewError(models.ErrInvalidConfig, "",
					fmt.Errorf("compression-level must be between %d and %d", flate.HuffmanOnly, flate.BestCompression))
			}

			dir := v.GetString(flagProjectDir)
			p, err := project.Load(cmd.Context(), dir, project.Overrides{
				BuildDir:       v.GetString(flagBuildDir),
				OutputDir:      v.GetString(flagOutputDir),
				OutputFilename: v.GetString(flagOutputFilename),
			})
			if err != nil {
				return err
			}

			logrus.Infof("Bundling %s %s", p.Name, p.Version)
			logrus.Debugf("Project: %+v", *p)

			result, err := bundler.New(p, bundler.WithCompressionLevel(level)).Build(cmd.Context())
			if err != nil {
				return err
			}

			logrus.Info("Bundle created successfully!")
			logrus.Infof("Archive: %s (%d files)", result.ArchivePath, result.FileCount)
			logrus.Debugf("SHA256: %s", result.SHA256)
			return nil
		},
	}

	cmd.Flags().StringP(flagProjectDir, "C", ".", "Project directory containing package.json")
	cmd.Flags().String(flagBuildDir, "", "Build output directory (overrides .npmbundlerrc)")
	cmd.Flags().StringP(flagOutputDir, "o", "", "Directory the archive is written to")
	cmd.Flags().String(flagOutputFilename, "", "Archive file name")
	cmd.Flags().Int(flagCompressionLevel, flate.DefaultCompression, "Deflate level for archive entries (-2 to 9)")

	v.SetDefault(flagProjectDir, ".")
	v.SetDefault(flagCompressionLevel, flate.DefaultCompression)

	return cmd
}
