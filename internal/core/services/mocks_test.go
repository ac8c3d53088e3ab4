package services

import (
	"context"
	"fmt"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// vectorFor maps text to a vector; the default embeds everything at the
// origin-adjacent unit vector so tests that ignore geometry stay short.
type mockEmbeddingService struct {
	dims      int
	model     string
	vectorFor func(text string) []float32

	embedErr   error
	batchErr   error
	embedCalls int
	batchCalls int
	batchTexts [][]string
}

var _ driven.EmbeddingService = (*mockEmbeddingService)(nil)

func newMockEmbedding() *mockEmbeddingService {
	return &mockEmbeddingService{
		dims:  3,
		model: "mock-embed",
	}
}

func (m *mockEmbeddingService) vector(text string) []float32 {
	if m.vectorFor != nil {
		return m.vectorFor(text)
	}
	return []float32{1, 0, 0}
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	m.batchTexts = append(m.batchTexts, texts)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vector(text)
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	return m.dims
}

func (m *mockEmbeddingService) ModelName() string {
	return m.model
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing. Responses
// are served in order; every call's messages and options are recorded.
type mockLLMService struct {
	responses []string
	chatErr   error

	calls   [][]driven.ChatMessage
	options []driven.ChatOptions
}

var _ driven.LLMService = (*mockLLMService)(nil)

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls = append(m.calls, messages)
	m.options = append(m.options, opts)
	if m.chatErr != nil {
		return "", m.chatErr
	}
	if len(m.calls) > len(m.responses) {
		return "", fmt.Errorf("mock llm: no response scripted for call %d", len(m.calls))
	}
	return m.responses[len(m.calls)-1], nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}
