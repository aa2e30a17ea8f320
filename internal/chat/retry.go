package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
)

// RetryConfig configures retry behavior for model calls.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns sensible defaults for hosted model APIs.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// Error substrings matched case-insensitively. Provider SDKs do not expose
// typed errors for transient failures, so string matching is the only
// discrimination available.
var (
	rateLimitPatterns = []string{"rate limit", "quota exceeded", "resource exhausted", "429"}
	transientPatterns = []string{"500", "502", "503", "504", "unavailable",
		"connection reset", "timeout", "temporary"}
)

func rateLimitError(err error) bool {
	return err != nil && containsAny(err.Error(), rateLimitPatterns)
}

// retryableError reports whether err is transient and worth another attempt.
func retryableError(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(), rateLimitPatterns) ||
		containsAny(err.Error(), transientPatterns)
}

func containsAny(s string, substrs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// executeWithRetry calls the model with exponential backoff. Each attempt,
// including retries, waits on the rate limiter first.
func (gg *GenkitGenerator) executeWithRetry(ctx context.Context, messages []*ai.Message) (*ai.ModelResponse, error) {
	var lastErr error
	delay := gg.cfg.Retry.InitialInterval
	start := time.Now()

	for attempt := 0; attempt <= gg.cfg.Retry.MaxRetries; attempt++ {
		if gg.limiter != nil {
			if err := gg.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		resp, err := gg.generateOnce(ctx, messages)
		if err == nil {
			gg.logger.Debug("model call succeeded",
				"attempts", attempt+1,
				"elapsed", time.Since(start))
			return resp, nil
		}
		lastErr = err

		if !retryableError(err) {
			return nil, err
		}
		if attempt == gg.cfg.Retry.MaxRetries {
			break
		}

		gg.logger.Debug("retrying model call",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
			delay = min(delay*2, gg.cfg.Retry.MaxInterval)
		}
	}

	return nil, fmt.Errorf("after %d retries (elapsed %v): %w",
		gg.cfg.Retry.MaxRetries, time.Since(start), lastErr)
}
