package driving

import (
	"context"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
)

// ChatService answers questions conversationally over the indexed corpus.
//
// A turn flows rephrase -> retrieve -> generate. Turns within a session
// are strictly sequential; a failed turn leaves the session's history
// untouched.
type ChatService interface {
	// Ask runs one conversation turn for the given session.
	Ask(ctx context.Context, sessionID, question string) (domain.Answer, error)

	// History returns the session's conversation so far.
	History(ctx context.Context, sessionID string) ([]domain.Message, error)
}
