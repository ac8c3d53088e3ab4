package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tabletalk-labs/tabletalk-cli/internal/adapters/driven/ai"
	"github.com/tabletalk-labs/tabletalk-cli/internal/adapters/driven/storage/memory"
	"github.com/tabletalk-labs/tabletalk-cli/internal/adapters/driven/storage/sqlite"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driving"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/services"
)

// sidecarFileName is the corpus fingerprint record inside the bundle
// directory.
const sidecarFileName = "corpus.fingerprint"

// pipeline is the fully wired question-answering stack for one process.
type pipeline struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	store    *sqlite.Store
	index    driven.VectorIndex
	report   driving.IndexReport
	chat     driving.ChatService
}

// buildPipeline validates providers, ensures the index is current and
// wires the chat service. force triggers a rebuild regardless of the
// corpus fingerprint.
func buildPipeline(ctx context.Context, force bool) (*pipeline, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(settings.Embedding)
	if err != nil {
		return nil, err
	}

	llm, err := ai.CreateAndValidateLLMService(settings.LLM)
	if err != nil {
		embedder.Close()
		return nil, err
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		embedder.Close()
		llm.Close()
		return nil, fmt.Errorf("open index bundle: %w", err)
	}

	indexer := services.NewIndexer(services.IndexerConfig{
		CorpusPath:  settings.Corpus.Path,
		SidecarPath: filepath.Join(store.Path(), sidecarFileName),
	}, embedder, store)

	index, report, err := indexer.Ensure(ctx, force)
	if err != nil {
		embedder.Close()
		llm.Close()
		store.Close()
		return nil, err
	}

	retriever := services.NewRetriever(index, embedder, settings.Retrieval.TopK)
	chat := services.NewChatService(retriever, llm, memory.NewHistoryStore())

	return &pipeline{
		embedder: embedder,
		llm:      llm,
		store:    store,
		index:    index,
		report:   report,
		chat:     chat,
	}, nil
}

// Close releases every resource the pipeline holds.
func (p *pipeline) Close() {
	p.index.Close()
	p.store.Close()
	p.llm.Close()
	p.embedder.Close()
}

// homeDataDir is the default bundle location when --data-dir is unset.
func homeDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".tabletalk", "data"), nil
}

// describeIndex renders a one-line status for the loaded index.
func describeIndex(report driving.IndexReport) string {
	state := "reused"
	if report.Rebuilt {
		state = "rebuilt"
	}
	return fmt.Sprintf("Index %s: %d documents", state, report.Documents)
}

// turnErrorMessage maps a failed turn to the operator-facing line.
func turnErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Please enter a question."
	case errors.Is(err, domain.ErrModelCall):
		return fmt.Sprintf("The model call failed, your question was not recorded. (%v)", err)
	default:
		return fmt.Sprintf("That turn failed, please try again. (%v)", err)
	}
}
