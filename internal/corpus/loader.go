package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/logger"
)

// Load parses the CSV corpus into one Document per data row, preserving
// row order. The first record is the header; each document's content is
// the row's values qualified by their column names, one per line.
//
// Load is deterministic: identical file bytes always yield an identical,
// identically ordered document sequence. That determinism is what makes
// fingerprint-based change detection sound.
func Load(corpusPath string) ([]domain.Document, error) {
	f, err := os.Open(corpusPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCorpusMissing, corpusPath)
		}
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorpusMalformed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrCorpusMalformed)
	}

	header := records[0]
	source := filepath.Base(corpusPath)

	docs := make([]domain.Document, 0, len(records)-1)
	for i, record := range records[1:] {
		row := i + 1

		var b strings.Builder
		for col, value := range record {
			if col > 0 {
				b.WriteString("\n")
			}
			b.WriteString(header[col])
			b.WriteString(": ")
			b.WriteString(value)
		}

		docs = append(docs, domain.Document{
			ID:      fmt.Sprintf("row-%04d", row),
			Row:     row,
			Content: b.String(),
			Metadata: map[string]any{
				"source": source,
				"row":    row,
			},
		})
	}

	logger.Debug("Loaded %d documents from %s", len(docs), corpusPath)
	return docs, nil
}
