package rag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aitechroberts/paperchat/internal/session"
)

// SystemInstruction is the fixed instruction seeding every chat session.
const SystemInstruction = "You are an assistant for question-answering tasks. " +
	"Use the following pieces of retrieved context to answer the question. " +
	"If you don't know the answer, just say that you don't know. " +
	"Use three sentences maximum and keep the answer concise."

// contextDelimiter separates retrieved chunks inside the context block. It
// contains a unit separator control character, which sanitization strips from
// all extracted text, so it can never collide with chunk content.
const contextDelimiter = "\n\x1f\n"

// ErrContextTooLarge is returned when the assembled prompt exceeds the
// configured limit. Context is never truncated silently.
var ErrContextTooLarge = errors.New("assembled context exceeds size limit")

// Assembler builds the message list sent to the generator.
type Assembler struct {
	maxContextRunes int
}

// NewAssembler creates an assembler that rejects prompts whose combined
// context and question exceed maxContextRunes.
func NewAssembler(maxContextRunes int) (*Assembler, error) {
	if maxContextRunes <= 0 {
		return nil, fmt.Errorf("max context runes must be positive, got %d", maxContextRunes)
	}
	return &Assembler{maxContextRunes: maxContextRunes}, nil
}

// Assemble merges the session history, retrieved context, and the current
// question into an ordered message list: system instruction first, then prior
// turns, then a single user message holding the labeled context block followed
// by the question.
func (a *Assembler) Assemble(history []session.Message, results []Result, question string) ([]session.Message, error) {
	var b strings.Builder
	if len(results) > 0 {
		b.WriteString("Context:\n")
		for i, r := range results {
			if i > 0 {
				b.WriteString(contextDelimiter)
			}
			b.WriteString(r.Text)
		}
		b.WriteString("\n\n")
	}
	b.WriteString("Question: ")
	b.WriteString(question)

	prompt := b.String()
	if n := len([]rune(prompt)); n > a.maxContextRunes {
		return nil, fmt.Errorf("%w: %d runes, limit %d", ErrContextTooLarge, n, a.maxContextRunes)
	}

	messages := make([]session.Message, 0, len(history)+2)
	if len(history) == 0 || history[0].Role != session.RoleSystem {
		messages = append(messages, session.Message{Role: session.RoleSystem, Content: SystemInstruction})
	}
	messages = append(messages, history...)
	messages = append(messages, session.Message{Role: session.RoleUser, Content: prompt})
	return messages, nil
}
