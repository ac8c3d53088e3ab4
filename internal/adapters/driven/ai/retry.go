package ai

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
)

// Ensure retryingLLM implements the interface.
var _ driven.LLMService = (*retryingLLM)(nil)

// retryInitialInterval is the first backoff delay between attempts.
const retryInitialInterval = 500 * time.Millisecond

// retryingLLM wraps an LLMService with bounded exponential backoff on
// transient chat failures. maxAttempts of 1 means no retry.
type retryingLLM struct {
	inner       driven.LLMService
	maxAttempts int
}

// NewRetryingLLM wraps svc so Chat retries up to maxAttempts times.
// Values below 1 are treated as 1.
func NewRetryingLLM(svc driven.LLMService, maxAttempts int) driven.LLMService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if maxAttempts == 1 {
		return svc
	}
	return &retryingLLM{
		inner:       svc,
		maxAttempts: maxAttempts,
	}
}

// Chat retries the inner Chat on failure. Context cancellation stops
// retrying immediately; the last error is returned once attempts run out.
func (r *retryingLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval

	var result string
	operation := func() error {
		var err error
		result, err = r.inner.Chat(ctx, messages, opts)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx))
	if err != nil {
		return "", err
	}
	return result, nil
}

// ModelName returns the name of the LLM model being used.
func (r *retryingLLM) ModelName() string {
	return r.inner.ModelName()
}

// Ping validates the underlying service is reachable.
func (r *retryingLLM) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close releases resources.
func (r *retryingLLM) Close() error {
	return r.inner.Close()
}
