package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
)

var (
	settingsModel  string
	settingsAPIKey string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the corpus location, AI providers and retrieval
options. Settings persist in ~/.tabletalk/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding [provider]",
	Short: "Configure the embedding provider (ollama or openai)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm [provider]",
	Short: "Configure the chat model provider (ollama or openai)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsLLM,
}

var settingsCorpusCmd = &cobra.Command{
	Use:   "corpus [path]",
	Short: "Set the corpus CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsCorpus,
}

var settingsTopKCmd = &cobra.Command{
	Use:   "top-k [n]",
	Short: "Set how many rows are retrieved per question",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTopK,
}

func init() {
	for _, c := range []*cobra.Command{settingsEmbeddingCmd, settingsLLMCmd} {
		c.Flags().StringVar(&settingsModel, "model", "", "model name (empty selects the provider default)")
		c.Flags().StringVar(&settingsAPIKey, "api-key", "", "API key for cloud providers")
	}
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsCorpusCmd)
	settingsCmd.AddCommand(settingsTopKCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Path: %s\n", settings.Corpus.Path)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())
	cmd.Printf("  Max Retries: %d\n", settings.LLM.MaxRetries)

	return nil
}

func printProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsEmbedding(cmd *cobra.Command, args []string) error {
	provider := domain.AIProvider(strings.ToLower(args[0]))
	if err := settingsService.SetEmbeddingProvider(provider, settingsModel, settingsAPIKey); err != nil {
		return err
	}
	cmd.Printf("Embedding provider set to %s\n", provider)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, args []string) error {
	provider := domain.AIProvider(strings.ToLower(args[0]))
	if err := settingsService.SetLLMProvider(provider, settingsModel, settingsAPIKey); err != nil {
		return err
	}
	cmd.Printf("LLM provider set to %s\n", provider)
	return nil
}

func runSettingsCorpus(cmd *cobra.Command, args []string) error {
	if err := settingsService.SetCorpusPath(args[0]); err != nil {
		return err
	}
	cmd.Printf("Corpus set to %s\n", args[0])
	return nil
}

func runSettingsTopK(cmd *cobra.Command, args []string) error {
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: top-k must be a number", domain.ErrInvalidInput)
	}
	if err := settingsService.SetTopK(k); err != nil {
		return err
	}
	cmd.Printf("Top K set to %d\n", k)
	return nil
}

// maskAPIKey shows just enough of a key to recognise it.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
