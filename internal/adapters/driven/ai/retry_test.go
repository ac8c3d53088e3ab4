package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
)

// flakyLLM fails a fixed number of times before succeeding.
type flakyLLM struct {
	failures int
	calls    int
}

var _ driven.LLMService = (*flakyLLM)(nil)

func (f *flakyLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("transient failure")
	}
	return "answer", nil
}

func (f *flakyLLM) ModelName() string            { return "flaky" }
func (f *flakyLLM) Ping(_ context.Context) error { return nil }
func (f *flakyLLM) Close() error                 { return nil }

func TestRetryingLLMSucceedsAfterTransientFailures(t *testing.T) {
	inner := &flakyLLM{failures: 2}
	svc := NewRetryingLLM(inner, 3)

	result, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "answer", result)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingLLMGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyLLM{failures: 10}
	svc := NewRetryingLLM(inner, 2)

	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingLLMSingleAttemptIsUnwrapped(t *testing.T) {
	inner := &flakyLLM{}

	svc := NewRetryingLLM(inner, 1)
	assert.Same(t, inner, svc)

	svc = NewRetryingLLM(inner, 0)
	assert.Same(t, inner, svc)
}

func TestRetryingLLMStopsOnCancelledContext(t *testing.T) {
	inner := &flakyLLM{failures: 10}
	svc := NewRetryingLLM(inner, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Chat(ctx, nil, driven.ChatOptions{})
	require.Error(t, err)
	assert.LessOrEqual(t, inner.calls, 1)
}
