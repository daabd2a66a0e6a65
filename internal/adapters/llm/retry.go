package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/PabloGalante/neogiator-agent/internal/domain"
	"github.com/PabloGalante/neogiator-agent/internal/observability"
)

const defaultBackoff = 500 * time.Millisecond

// Retrying wraps a generator and retries failed calls with a linear backoff.
type Retrying struct {
	next     domain.TextGenerator
	attempts int
	backoff  time.Duration
}

// WithRetry returns gen unchanged when attempts <= 1.
func WithRetry(gen domain.TextGenerator, attempts int, backoff time.Duration) domain.TextGenerator {
	if gen == nil || attempts <= 1 {
		return gen
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &Retrying{next: gen, attempts: attempts, backoff: backoff}
}

func (r *Retrying) GenerateText(ctx context.Context, req domain.GenerationRequest) (string, error) {
	text, err := retry(ctx, r.attempts, r.backoff, func() (string, error) {
		return r.next.GenerateText(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// retry runs fn up to attempts times, waiting backoff*(i+1) between tries.
// It stops early when ctx is done.
func retry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}

		wait := backoff * time.Duration(i+1)
		observability.LoggerFromContext(ctx).Debug("generation failed, retrying",
			"attempt", i+1, "wait_ms", wait.Milliseconds(), "error", err)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return zero, fmt.Errorf("after %d attempts: %w", i+1, lastErr)
		case <-t.C:
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
