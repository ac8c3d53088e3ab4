package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
	"github.com/tabletalk-labs/tabletalk-cli/internal/logger"
)

// DefaultTopK is the number of nearest documents retrieved per query.
const DefaultTopK = 4

// Context delimiters. The exact wrapping and ordering of the context
// string is observable by the model, so it is part of the contract here.
const (
	docOpen  = "<doc>"
	docClose = "</doc>"
)

// Retriever wraps the loaded vector index with a similarity-search
// contract for query strings. No side effects.
type Retriever struct {
	index    driven.VectorIndex
	embedder driven.EmbeddingService
	topK     int
}

// NewRetriever creates a retriever over a loaded index.
// topK <= 0 falls back to DefaultTopK.
func NewRetriever(index driven.VectorIndex, embedder driven.EmbeddingService, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		index:    index,
		embedder: embedder,
		topK:     topK,
	}
}

// Retrieve returns the top-k closest documents for the query text,
// closest first.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.Match, error) {
	if r.index == nil {
		return nil, domain.ErrIndexUnavailable
	}

	logger.Debug("Retrieving top %d for %q", r.topK, query)

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := r.index.Search(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	logger.Debug("Retrieved %d matches", len(matches))
	return matches, nil
}

// ContextString renders matches into the context text the answer stage
// sees: each document's content wrapped in a delimiting marker, joined
// with newlines, retrieval order preserved verbatim.
func ContextString(matches []domain.Match) string {
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = docOpen + "\n" + m.Document.Content + "\n" + docClose
	}
	return strings.Join(blocks, "\n")
}
