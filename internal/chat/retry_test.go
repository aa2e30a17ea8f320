package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("429: rate limit exceeded"), true},
		{"quota", errors.New("Quota Exceeded for project"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE EXHAUSTED"), true},
		{"server error", errors.New("503 Service Unavailable"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"timeout", errors.New("request timeout"), true},
		{"invalid request", errors.New("400: invalid argument"), false},
		{"auth failure", errors.New("401: unauthorized"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryableError(tt.err))
		})
	}
}

func TestClassifyGenerationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), ErrTimeout},
		{"rate limit", errors.New("429 too many requests"), ErrRateLimited},
		{"quota", errors.New("quota exceeded"), ErrRateLimited},
		{"generic", errors.New("internal model error"), ErrGeneration},
		{"cancelled", context.Canceled, ErrGeneration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyGenerationError(tt.err), tt.want)
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Positive(t, cfg.InitialInterval)
	assert.Greater(t, cfg.MaxInterval, cfg.InitialInterval)
}
