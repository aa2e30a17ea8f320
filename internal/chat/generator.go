// Package chat drives one conversational turn: retrieve context, assemble the
// prompt, call the model, and record the reply in the session.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/aitechroberts/paperchat/internal/session"
)

// Sentinel errors for generation, checked with errors.Is.
var (
	// ErrGeneration indicates the model call failed.
	ErrGeneration = errors.New("generation failed")

	// ErrRateLimited indicates the provider rejected the call for quota.
	ErrRateLimited = errors.New("rate limited by model provider")

	// ErrTimeout indicates the call exceeded its deadline.
	ErrTimeout = errors.New("generation timed out")

	// ErrEmptyReply indicates the model returned no text. Never converted
	// into an empty assistant message.
	ErrEmptyReply = errors.New("model returned an empty reply")
)

// Generator produces a reply from an ordered message log. Defined by the
// consumer so tests can substitute fakes.
type Generator interface {
	Generate(ctx context.Context, messages []session.Message) (string, error)
}

// GeneratorConfig parameterizes the Genkit-backed generator.
type GeneratorConfig struct {
	Model       string        // provider-qualified, e.g. "googleai/gemini-2.5-flash"
	Temperature float64
	CallTimeout time.Duration // per-call deadline, 0 = no deadline
	Retry       RetryConfig   // zero value uses defaults
	RateLimiter *rate.Limiter // nil = unlimited
	Logger      *slog.Logger
}

// GenkitGenerator calls a hosted model through Genkit.
type GenkitGenerator struct {
	g       *genkit.Genkit
	cfg     GeneratorConfig
	logger  *slog.Logger
	limiter *rate.Limiter
}

// NewGenkitGenerator builds a generator. The genkit instance must already
// have the model's provider plugin initialized.
func NewGenkitGenerator(g *genkit.Genkit, cfg GeneratorConfig) (*GenkitGenerator, error) {
	if g == nil {
		return nil, errors.New("genkit instance is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("model name is required")
	}
	if cfg.Retry == (RetryConfig{}) {
		cfg.Retry = DefaultRetryConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GenkitGenerator{g: g, cfg: cfg, logger: logger, limiter: cfg.RateLimiter}, nil
}

// Generate implements Generator. The call is rate limited, retried on
// transient provider errors, and bounded by the configured timeout.
func (gg *GenkitGenerator) Generate(ctx context.Context, messages []session.Message) (string, error) {
	aiMessages, err := toModelMessages(messages)
	if err != nil {
		return "", err
	}

	if gg.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gg.cfg.CallTimeout)
		defer cancel()
	}

	resp, err := gg.executeWithRetry(ctx, aiMessages)
	if err != nil {
		return "", classifyGenerationError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

func (gg *GenkitGenerator) generateOnce(ctx context.Context, messages []*ai.Message) (*ai.ModelResponse, error) {
	return genkit.Generate(ctx, gg.g,
		ai.WithModelName(gg.cfg.Model),
		ai.WithMessages(messages...),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(gg.cfg.Temperature)),
		}),
	)
}

// toModelMessages converts the session transcript to Genkit messages. The
// role set is closed; an unknown role is a programming error, not input.
func toModelMessages(messages []session.Message) ([]*ai.Message, error) {
	out := make([]*ai.Message, len(messages))
	for i, m := range messages {
		switch m.Role {
		case session.RoleSystem:
			out[i] = ai.NewSystemTextMessage(m.Content)
		case session.RoleUser:
			out[i] = ai.NewUserTextMessage(m.Content)
		case session.RoleAssistant:
			out[i] = ai.NewModelTextMessage(m.Content)
		default:
			return nil, fmt.Errorf("unknown message role %q", m.Role)
		}
	}
	return out, nil
}

// classifyGenerationError maps provider failures onto the package sentinels
// so callers can discriminate with errors.Is.
func classifyGenerationError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	case rateLimitError(err):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
}
