package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aitechroberts/paperchat/internal/rag"
	"github.com/aitechroberts/paperchat/internal/session"
)

// ContextRetriever fetches context for a question.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]rag.Result, error)
}

// PromptAssembler builds the message log sent to the model.
type PromptAssembler interface {
	Assemble(history []session.Message, results []rag.Result, question string) ([]session.Message, error)
}

// Engine processes one user turn at a time: retrieve, assemble, generate,
// record. Turns within a session never overlap; the caller drives them
// sequentially.
type Engine struct {
	retriever ContextRetriever
	assembler PromptAssembler
	generator Generator
	topK      int
	logger    *slog.Logger
}

// NewEngine wires the turn pipeline. topK bounds how much context each
// question retrieves.
func NewEngine(retriever ContextRetriever, assembler PromptAssembler, generator Generator, topK int, logger *slog.Logger) (*Engine, error) {
	if retriever == nil || assembler == nil || generator == nil {
		return nil, errors.New("retriever, assembler and generator are required")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("top-k must be positive, got %d", topK)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		topK:      topK,
		logger:    logger,
	}, nil
}

// Turn runs one complete question/answer exchange against sess and returns
// the assistant's reply. On any failure after the question is accepted, the
// turn is aborted: the user message stays in the transcript, no assistant
// entry is added, and the session accepts the next question.
func (e *Engine) Turn(ctx context.Context, sess *session.Session, input string) (string, error) {
	history := sess.Messages()
	if err := sess.AppendUser(input); err != nil {
		return "", err
	}

	results, err := e.retriever.Retrieve(ctx, input, e.topK)
	if err != nil {
		sess.AbortTurn()
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	messages, err := e.assembler.Assemble(history, results, input)
	if err != nil {
		sess.AbortTurn()
		return "", fmt.Errorf("assemble prompt: %w", err)
	}

	reply, err := e.generator.Generate(ctx, messages)
	if err != nil {
		sess.AbortTurn()
		if errors.Is(err, ErrGeneration) || errors.Is(err, ErrRateLimited) ||
			errors.Is(err, ErrTimeout) || errors.Is(err, ErrEmptyReply) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if err := sess.AppendAssistant(reply); err != nil {
		return "", err
	}

	e.logger.Debug("turn completed",
		"session_id", sess.ID(),
		"context_results", len(results),
		"reply_length", len(reply))
	return reply, nil
}
