// Package memory provides in-memory implementations of the storage
// ports. The history store is the production backing for conversation
// history (process-scoped by design); the index store exists for tests.
package memory

import (
	"context"
	"sync"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Histories live for the process lifetime and are partitioned per
// session id with no cross-session sharing.
type HistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Message
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		sessions: make(map[string][]domain.Message),
	}
}

// Append adds messages to the end of a session's history.
// The session is created implicitly on first reference.
func (s *HistoryStore) Append(_ context.Context, sessionID string, messages ...domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], messages...)
	return nil
}

// Get returns a copy of the session's history in chronological order.
// An unknown session yields an empty history.
func (s *HistoryStore) Get(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sessions[sessionID]
	out := make([]domain.Message, len(history))
	copy(out, history)
	return out, nil
}

// Clear removes all history for a session.
func (s *HistoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
