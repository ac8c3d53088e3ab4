package driven

import (
	"context"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
)

// IndexStore owns the lifecycle of the persisted vector index bundle.
//
// Persist is the only write path and Load is the only read path used by
// the running system: a rebuild always persists first and then reloads
// from storage, which catches serialisation bugs early. At most one
// persisted index exists at a time - Persist overwrites any prior bundle.
type IndexStore interface {
	// Persist serialises documents and their embeddings to stable
	// storage, replacing any previous bundle. The batch is atomic:
	// documents[i] corresponds to embeddings[i], and a partial batch
	// must never be written.
	Persist(ctx context.Context, docs []domain.Document, embeddings [][]float32, meta IndexMeta) error

	// Load deserialises a previously persisted bundle into a searchable
	// index. Returns a domain.ErrIndexStorage-wrapped error if the
	// bundle is absent or corrupt.
	Load(ctx context.Context) (VectorIndex, error)

	// Path returns the bundle location on disk.
	Path() string
}

// IndexMeta describes the embedding space of a persisted index.
type IndexMeta struct {
	// Dimensions is the embedding vector size.
	Dimensions int

	// Model is the embedding model that produced the vectors.
	Model string
}

// VectorIndex provides nearest-neighbour search over embedded documents.
// Read-only after load; concurrent Search calls are safe.
type VectorIndex interface {
	// Search finds the k nearest documents to the query vector,
	// ordered closest first.
	Search(ctx context.Context, query []float32, k int) ([]domain.Match, error)

	// Count returns the number of indexed documents.
	Count() int

	// Dimensions returns the embedding vector size of the index.
	Dimensions() int

	// Close releases resources.
	Close() error
}
