package services

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driving"
	"github.com/tabletalk-labs/tabletalk-cli/internal/corpus"
	"github.com/tabletalk-labs/tabletalk-cli/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.IndexOrchestrator = (*Indexer)(nil)

// Default indexing behaviour.
const (
	// DefaultEmbedBatchSize is how many documents go into one embedding
	// request.
	DefaultEmbedBatchSize = 64

	// DefaultEmbedRPS caps embedding requests per second during a rebuild.
	DefaultEmbedRPS = 5
)

// Indexer gates corpus re-embedding on the recorded fingerprint and owns
// the rebuild sequence: load corpus, embed all rows, persist the bundle,
// then record the fingerprint - in that order, so a crash mid-sequence
// always reads as "stale, rebuild again" on the next run.
type Indexer struct {
	corpusPath  string
	sidecarPath string
	embedder    driven.EmbeddingService
	store       driven.IndexStore
	limiter     *rate.Limiter
	batchSize   int
}

// IndexerConfig configures an Indexer.
type IndexerConfig struct {
	// CorpusPath is the CSV knowledge source.
	CorpusPath string

	// SidecarPath is where the corpus fingerprint is recorded.
	SidecarPath string

	// BatchSize is documents per embedding request (default 64).
	BatchSize int

	// EmbedRPS caps embedding requests per second (default 5).
	EmbedRPS float64
}

// NewIndexer creates an index orchestrator.
func NewIndexer(cfg IndexerConfig, embedder driven.EmbeddingService, store driven.IndexStore) *Indexer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultEmbedBatchSize
	}
	if cfg.EmbedRPS <= 0 {
		cfg.EmbedRPS = DefaultEmbedRPS
	}

	return &Indexer{
		corpusPath:  cfg.CorpusPath,
		sidecarPath: cfg.SidecarPath,
		embedder:    embedder,
		store:       store,
		limiter:     rate.NewLimiter(rate.Limit(cfg.EmbedRPS), 1),
		batchSize:   cfg.BatchSize,
	}
}

// Ensure makes a loaded index available. If the corpus fingerprint
// differs from the sidecar record (or force is set), the whole corpus is
// re-embedded and persisted; either way the index the caller receives is
// loaded from storage, never the in-memory build. Reloading the
// serialised form on every startup catches serialisation bugs early.
func (ix *Indexer) Ensure(ctx context.Context, force bool) (driven.VectorIndex, driving.IndexReport, error) {
	logger.Section("Index")

	reindex, fingerprint, err := corpus.ShouldReindex(ix.corpusPath, ix.sidecarPath)
	if err != nil {
		return nil, driving.IndexReport{}, err
	}

	report := driving.IndexReport{Fingerprint: fingerprint}

	if reindex || force {
		// A corpus that cannot be parsed is fatal: no index can be
		// produced or trusted from it.
		docs, err := corpus.Load(ix.corpusPath)
		if err != nil {
			return nil, report, err
		}

		if err := ix.rebuild(ctx, docs, fingerprint); err != nil {
			// A failed embed or persist falls back to the existing
			// on-disk index if one can still be loaded.
			logger.Warn("Rebuild failed: %v", err)
			index, loadErr := ix.store.Load(ctx)
			if loadErr != nil {
				return nil, report, fmt.Errorf("rebuild: %w", err)
			}
			logger.Info("Serving previous index (%d documents)", index.Count())
			report.Documents = index.Count()
			return index, report, nil
		}
		report.Rebuilt = true
	}

	index, err := ix.store.Load(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("load index: %w", err)
	}

	report.Documents = index.Count()
	logger.Info("Index ready: %d documents (rebuilt=%t)", report.Documents, report.Rebuilt)
	return index, report, nil
}

// rebuild embeds the full corpus and persists it. The embedding batch
// is atomic: any failure abandons the build before anything is written,
// leaving the prior on-disk index authoritative.
func (ix *Indexer) rebuild(ctx context.Context, docs []domain.Document, fingerprint string) error {
	logger.Info("Rebuilding index from %d documents", len(docs))

	embeddings := make([][]float32, 0, len(docs))
	for start := 0; start < len(docs); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		if err := ix.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrEmbeddingFailed, err)
		}

		texts := make([]string, 0, end-start)
		for _, doc := range docs[start:end] {
			texts = append(texts, doc.Content)
		}

		logger.Debug("Embedding batch %d-%d", start, end-1)
		vectors, err := ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: batch %d-%d: %v", domain.ErrEmbeddingFailed, start, end-1, err)
		}
		if len(vectors) != end-start {
			return fmt.Errorf("%w: batch %d-%d: got %d vectors for %d texts",
				domain.ErrEmbeddingFailed, start, end-1, len(vectors), end-start)
		}
		embeddings = append(embeddings, vectors...)
	}

	meta := driven.IndexMeta{
		Dimensions: ix.embedder.Dimensions(),
		Model:      ix.embedder.ModelName(),
	}
	if err := ix.store.Persist(ctx, docs, embeddings, meta); err != nil {
		return fmt.Errorf("persist index: %w", err)
	}

	// The sidecar goes in strictly after the bundle: "index looks
	// stale, will rebuild" beats "index looks fresh but is stale".
	if err := corpus.WriteSidecar(ix.sidecarPath, fingerprint); err != nil {
		return err
	}

	logger.Info("Persisted index bundle at %s", ix.store.Path())
	return nil
}
