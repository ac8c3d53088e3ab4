// Package cli implements the command-line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driving"
	"github.com/tabletalk-labs/tabletalk-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services.
var settingsService driving.SettingsService

// Persistent flags.
var (
	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "tabletalk",
	Short: "Conversational question answering over a CSV knowledge source",
	Long: `Tabletalk answers questions about a fixed tabular knowledge source,
such as an FAQ or product sheet exported to CSV.

On startup it fingerprints the corpus and rebuilds the vector index only
when the corpus changed. Questions are rephrased into standalone form,
matched against the index, and answered from the retrieved rows.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "index bundle directory (default ~/.tabletalk/data)")
}

// SetSettingsService injects the settings service.
func SetSettingsService(svc driving.SettingsService) {
	settingsService = svc
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	// A .env next to the binary supplies credentials in development;
	// missing files are fine.
	_ = godotenv.Load()

	return rootCmd.Execute()
}
