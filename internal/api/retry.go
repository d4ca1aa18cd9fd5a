package api

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/abhisek/lernix/internal/quiz"
)

// RetryGenerator is a decorator that retries failed question generation.
// The backend's model occasionally returns malformed or truncated output,
// so a bounded retry recovers most of those without user intervention.
type RetryGenerator struct {
	inner  QuestionGenerator
	config RetryConfig
}

// WithRetry wraps a QuestionGenerator with retry logic.
func WithRetry(g QuestionGenerator, cfg RetryConfig) QuestionGenerator {
	return &RetryGenerator{inner: g, config: cfg}
}

func (r *RetryGenerator) GenerateQuestions(ctx context.Context, req QuestionRequest) ([]quiz.Question, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		questions, err := r.inner.GenerateQuestions(ctx, req)
		if err == nil {
			return questions, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff()):
		}
	}

	return nil, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Missing credentials and rejected input don't improve with retries.
	var authErr *AuthRequiredError
	if errors.As(err, &authErr) {
		return false
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return false
	}

	// Backend errors retry only when the status says so.
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	// Malformed payloads and network errors are treated as transient.
	return true
}

// backoff computes the wait between attempts with ±20% jitter.
func (r *RetryGenerator) backoff() time.Duration {
	wait := float64(r.config.Backoff)
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
