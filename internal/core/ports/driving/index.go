package driving

import (
	"context"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
)

// IndexOrchestrator gates and executes corpus indexing.
type IndexOrchestrator interface {
	// Ensure makes a loaded index available: rebuilds if the corpus
	// changed since the last recorded fingerprint (or force is set),
	// then always loads from storage.
	Ensure(ctx context.Context, force bool) (driven.VectorIndex, IndexReport, error)
}

// IndexReport describes what Ensure did.
type IndexReport struct {
	// Rebuilt is true if the corpus was re-embedded this run.
	Rebuilt bool

	// Documents is the number of documents in the loaded index.
	Documents int

	// Fingerprint is the corpus digest recorded for this run.
	Fingerprint string
}
