package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
	"github.com/tabletalk-labs/tabletalk-cli/internal/vectormath"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// It mirrors the sqlite bundle's semantics - Persist replaces the whole
// snapshot, Load fails when nothing was ever persisted - so service
// tests exercise the same contract the production store honours.
type IndexStore struct {
	mu         sync.RWMutex
	docs       []domain.Document
	embeddings [][]float32
	meta       driven.IndexMeta
	persisted  bool

	// PersistCalls counts Persist invocations, for idempotence tests.
	PersistCalls int
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Persist replaces the stored snapshot.
func (s *IndexStore) Persist(_ context.Context, docs []domain.Document, embeddings [][]float32, meta driven.IndexMeta) error {
	if len(docs) != len(embeddings) {
		return fmt.Errorf("%w: %d documents but %d embeddings",
			domain.ErrIndexStorage, len(docs), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append([]domain.Document(nil), docs...)
	s.embeddings = append([][]float32(nil), embeddings...)
	s.meta = meta
	s.persisted = true
	s.PersistCalls++
	return nil
}

// Load returns a searchable view of the stored snapshot.
func (s *IndexStore) Load(_ context.Context) (driven.VectorIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.persisted {
		return nil, fmt.Errorf("%w: no index persisted", domain.ErrIndexStorage)
	}

	return &memoryIndex{
		docs:       s.docs,
		embeddings: s.embeddings,
		dimensions: s.meta.Dimensions,
	}, nil
}

// Path identifies the store; in-memory stores have no real location.
func (s *IndexStore) Path() string {
	return ":memory:"
}

// memoryIndex is a brute-force cosine index over the snapshot.
type memoryIndex struct {
	docs       []domain.Document
	embeddings [][]float32
	dimensions int
}

var _ driven.VectorIndex = (*memoryIndex)(nil)

// Search finds the k nearest documents, closest first.
func (ix *memoryIndex) Search(_ context.Context, query []float32, k int) ([]domain.Match, error) {
	return vectormath.NearestK(query, ix.docs, ix.embeddings, k), nil
}

// Count returns the number of indexed documents.
func (ix *memoryIndex) Count() int {
	return len(ix.docs)
}

// Dimensions returns the embedding vector size of the index.
func (ix *memoryIndex) Dimensions() int {
	return ix.dimensions
}

// Close releases resources.
func (ix *memoryIndex) Close() error {
	return nil
}
