package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
)

const sampleCSV = `question,answer
What is your refund policy?,Full refund within 30 days.
Do you ship internationally?,"Yes, to over 40 countries."
How do I reset my password?,Use the forgot password link.
`

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faq.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_OneDocumentPerRow(t *testing.T) {
	path := writeCorpus(t, sampleCSV)

	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "row-0001", docs[0].ID)
	assert.Equal(t, 1, docs[0].Row)
	assert.Equal(t,
		"question: What is your refund policy?\nanswer: Full refund within 30 days.",
		docs[0].Content)
	assert.Equal(t, "faq.csv", docs[0].Metadata["source"])
	assert.Equal(t, 1, docs[0].Metadata["row"])

	// Row order preserved.
	assert.Equal(t, 2, docs[1].Row)
	assert.Equal(t, 3, docs[2].Row)
	assert.Contains(t, docs[1].Content, "Do you ship internationally?")
}

func TestLoad_Deterministic(t *testing.T) {
	path := writeCorpus(t, sampleCSV)

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorpusMissing)
}

func TestLoad_MalformedCSV(t *testing.T) {
	// Ragged row: three fields where the header declares two.
	path := writeCorpus(t, "question,answer\na,b,c\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorpusMalformed)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeCorpus(t, "")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorpusMalformed)
}
