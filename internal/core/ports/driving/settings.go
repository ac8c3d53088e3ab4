package driving

import "github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults applied
	// for anything not configured.
	Get() (domain.AppSettings, error)

	// Save persists application settings.
	Save(settings domain.AppSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	// Empty model selects the provider default.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the chat model provider.
	// Empty model selects the provider default.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetCorpusPath updates the corpus file location.
	SetCorpusPath(path string) error

	// SetTopK updates the number of documents retrieved per question.
	SetTopK(k int) error
}
