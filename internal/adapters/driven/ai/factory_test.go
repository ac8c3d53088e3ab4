package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
)

func TestCreateEmbeddingServiceOllama(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  "http://localhost:11434",
	})
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
}

func TestCreateEmbeddingServiceOpenAI(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
		APIKey:   "sk-test",
	})
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestCreateEmbeddingServiceUnconfigured(t *testing.T) {
	_, err := CreateEmbeddingService(domain.EmbeddingSettings{})
	require.Error(t, err)

	// OpenAI without a key is unconfigured too.
	_, err = CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
	})
	require.Error(t, err)
}

func TestCreateLLMServiceOllama(t *testing.T) {
	svc, err := CreateLLMService(domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3.2",
		BaseURL:  "http://localhost:11434",
	})
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "llama3.2", svc.ModelName())
}

func TestCreateLLMServiceOpenAI(t *testing.T) {
	svc, err := CreateLLMService(domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "sk-test",
	})
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}

func TestCreateLLMServiceUnconfigured(t *testing.T) {
	_, err := CreateLLMService(domain.LLMSettings{})
	require.Error(t, err)
}
