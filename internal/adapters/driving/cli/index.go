package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tabletalk-labs/tabletalk-cli/internal/corpus"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the corpus index",
	RunE:  runIndexStatus,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Build the index, re-embedding the corpus if it changed",
	Long: `Fingerprint the corpus and rebuild the index when the recorded
fingerprint differs. With --force the corpus is re-embedded even when
unchanged.`,
	RunE: runIndexRebuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the index is current for the corpus",
	RunE:  runIndexStatus,
}

func init() {
	indexRebuildCmd.Flags().BoolVar(&indexForce, "force", false, "re-embed even when the corpus is unchanged")
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	p, err := buildPipeline(cmd.Context(), indexForce)
	if err != nil {
		return err
	}
	defer p.Close()

	cmd.Println(describeIndex(p.report))
	cmd.Printf("Fingerprint: %s\n", p.report.Fingerprint)
	return nil
}

// runIndexStatus compares fingerprints without touching any provider,
// so it works offline.
func runIndexStatus(cmd *cobra.Command, _ []string) error {
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	bundleDir := dataDir
	if bundleDir == "" {
		home, err := homeDataDir()
		if err != nil {
			return err
		}
		bundleDir = home
	}
	sidecarPath := filepath.Join(bundleDir, sidecarFileName)

	stale, fingerprint, err := corpus.ShouldReindex(settings.Corpus.Path, sidecarPath)
	if err != nil {
		return err
	}

	cmd.Printf("Corpus:      %s\n", settings.Corpus.Path)
	cmd.Printf("Fingerprint: %s\n", fingerprint)
	if stale {
		cmd.Println("Status:      stale (next run re-embeds the corpus)")
	} else {
		cmd.Println("Status:      current")
	}
	return nil
}
