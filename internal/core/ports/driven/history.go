package driven

import (
	"context"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
)

// HistoryStore keeps ordered conversation history per session.
//
// Histories are append-only: insertion order equals chronological turn
// order and messages are never reordered or deduplicated. A session is
// created implicitly on first reference. The default backing is
// in-memory and process-scoped; alternative backings (bounded ring
// buffer, external store) can be substituted without touching
// orchestration logic.
type HistoryStore interface {
	// Append adds messages to the end of a session's history.
	Append(ctx context.Context, sessionID string, messages ...domain.Message) error

	// Get returns a session's full history in chronological order.
	// An unknown session yields an empty history, not an error.
	Get(ctx context.Context, sessionID string) ([]domain.Message, error)

	// Clear removes all history for a session.
	Clear(ctx context.Context, sessionID string) error
}
