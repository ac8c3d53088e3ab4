package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driving"
	"github.com/tabletalk-labs/tabletalk-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Default generation options per stage.
var (
	rephraseOptions = driven.ChatOptions{MaxTokens: 256, Temperature: 0.0}
	answerOptions   = driven.ChatOptions{MaxTokens: 1024, Temperature: 0.2}
)

// ChatService runs the per-turn conversational pipeline:
// rephrase -> retrieve -> generate, then append to history.
//
// Turns within a session are strictly sequential. A failure at any step
// aborts the turn without mutating history, so history reflects only
// fully completed turns.
type ChatService struct {
	retriever *Retriever
	llm       driven.LLMService
	history   driven.HistoryStore
}

// NewChatService creates a chat service over a loaded index.
func NewChatService(retriever *Retriever, llm driven.LLMService, history driven.HistoryStore) *ChatService {
	return &ChatService{
		retriever: retriever,
		llm:       llm,
		history:   history,
	}
}

// Ask runs one conversation turn for the given session.
//
// The rephrased question drives retrieval only; the answer stage sees
// the user's original question. That asymmetry is deliberate and must
// not be "fixed".
func (s *ChatService) Ask(ctx context.Context, sessionID, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	logger.Section("Turn")
	logger.Debug("Session %s: %q", sessionID, question)

	history, err := s.history.Get(ctx, sessionID)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("read history: %w", err)
	}

	// 1. Rephrase into a standalone question. Output is used verbatim,
	// no validation, no retry-on-echo.
	standalone, err := s.rephrase(ctx, history, question)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Debug("Standalone question: %q", standalone)

	// 2. Retrieve context for the standalone question.
	matches, err := s.retriever.Retrieve(ctx, standalone)
	if err != nil {
		return domain.Answer{}, err
	}
	contextText := ContextString(matches)

	// 3. Generate the answer from context, history and the ORIGINAL
	// question.
	text, err := s.generate(ctx, contextText, history, question)
	if err != nil {
		return domain.Answer{}, err
	}

	// 4. Only a fully completed turn reaches history: user question
	// first, assistant answer second.
	err = s.history.Append(ctx, sessionID,
		domain.Message{Role: domain.RoleUser, Content: question},
		domain.Message{Role: domain.RoleAssistant, Content: text},
	)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("append history: %w", err)
	}

	logger.Info("Turn complete for session %s", sessionID)
	return domain.Answer{
		SessionID:          sessionID,
		Question:           question,
		StandaloneQuestion: standalone,
		Text:               text,
		Matches:            matches,
	}, nil
}

// History returns the session's conversation so far.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	return s.history.Get(ctx, sessionID)
}

// rephrase produces a history-independent question via one model call.
func (s *ChatService) rephrase(ctx context.Context, history []domain.Message, question string) (string, error) {
	// Nothing to condense on the first turn, but the model call is
	// still made so behaviour does not depend on history length.
	out, err := s.llm.Chat(ctx, buildRephrasePrompt(history, question), rephraseOptions)
	if err != nil {
		return "", fmt.Errorf("%w: rephrase: %v", domain.ErrModelCall, err)
	}
	return out, nil
}

// generate produces the final answer via one model call, unparsed.
func (s *ChatService) generate(ctx context.Context, contextText string, history []domain.Message, question string) (string, error) {
	out, err := s.llm.Chat(ctx, buildAnswerPrompt(contextText, history, question), answerOptions)
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", domain.ErrModelCall, err)
	}
	return out, nil
}
