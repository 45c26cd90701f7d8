package cli

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables mirroring command flags
const EnvPrefix = "JARBUNDLER"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:   "jarbundler",
		Short: "Package front-end build output as a deployable OSGi bundle",
		Long: `Jarbundler packs the build output of a front-end project into a JAR
archive, together with the manifest and configuration metadata the portal
runtime needs to deploy it.

Settings are read from package.json and .npmbundlerrc in the project
directory. Command flags may also be set as JARBUNDLER_* environment
variables, e.g. JARBUNDLER_OUTPUT_DIR.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			if v.GetBool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(NewBuildCmd(v))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}
