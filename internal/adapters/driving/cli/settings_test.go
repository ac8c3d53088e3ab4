package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletalk-labs/tabletalk-cli/internal/adapters/driven/storage/memory"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/services"
)

// withSettingsService installs a fresh settings service for one test.
func withSettingsService(t *testing.T) {
	t.Helper()
	original := settingsService
	SetSettingsService(services.NewSettingsService(memory.NewConfigStore()))
	t.Cleanup(func() { settingsService = original })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestSettingsShowDefaults(t *testing.T) {
	withSettingsService(t)

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "faq.csv")
	assert.Contains(t, out, "Top K: 4")
	assert.Contains(t, out, "not configured")
}

func TestSettingsConfigureOllamaProviders(t *testing.T) {
	withSettingsService(t)

	_, err := execute(t, "settings", "llm", "ollama")
	require.NoError(t, err)
	_, err = execute(t, "settings", "embedding", "ollama")
	require.NoError(t, err)

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "llama3.2")
	assert.Contains(t, out, "nomic-embed-text")
	assert.NotContains(t, out, "not configured")
}

func TestSettingsRejectsUnknownProvider(t *testing.T) {
	withSettingsService(t)

	_, err := execute(t, "settings", "llm", "skynet")
	require.Error(t, err)
}

func TestSettingsCorpusAndTopK(t *testing.T) {
	withSettingsService(t)

	_, err := execute(t, "settings", "corpus", "data/products.csv")
	require.NoError(t, err)
	_, err = execute(t, "settings", "top-k", "8")
	require.NoError(t, err)

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "data/products.csv")
	assert.Contains(t, out, "Top K: 8")
}

func TestSettingsTopKRejectsNonNumber(t *testing.T) {
	withSettingsService(t)

	_, err := execute(t, "settings", "top-k", "lots")
	require.Error(t, err)
}
