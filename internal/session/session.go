// Package session holds the conversational state of a chat: an ordered
// message transcript plus a small state machine that keeps user and
// assistant turns strictly alternating.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message. The set is closed; any other
// value is a programming error.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the transcript.
type Message struct {
	Role    Role
	Content string
	At      time.Time
}

// State is the turn-taking position of a session.
type State int

const (
	// StateEmpty means only the system instruction is present.
	StateEmpty State = iota

	// StateAwaitingReply means the last message is from the user.
	StateAwaitingReply

	// StateReady means the last user message has been answered.
	StateReady
)

var (
	// ErrAwaitingReply is returned when a user message arrives while the
	// previous one has not been answered yet.
	ErrAwaitingReply = errors.New("previous question has not been answered")

	// ErrNotAwaitingReply is returned when an assistant message arrives
	// without a pending user question.
	ErrNotAwaitingReply = errors.New("no pending question to answer")
)

// Session is a single conversation. It is not safe for concurrent use;
// callers own the synchronization.
type Session struct {
	id       string
	messages []Message
	state    State
	started  time.Time
}

// New creates a session seeded with the system instruction as its first
// message.
func New(systemInstruction string) *Session {
	now := time.Now()
	return &Session{
		id:      uuid.NewString(),
		started: now,
		state:   StateEmpty,
		messages: []Message{
			{Role: RoleSystem, Content: systemInstruction, At: now},
		},
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// State returns the current turn-taking state.
func (s *Session) State() State { return s.state }

// Started returns when the session was created.
func (s *Session) Started() time.Time { return s.started }

// AppendUser records a user question. Valid only when no reply is pending.
func (s *Session) AppendUser(content string) error {
	if s.state == StateAwaitingReply {
		return ErrAwaitingReply
	}
	s.messages = append(s.messages, Message{Role: RoleUser, Content: content, At: time.Now()})
	s.state = StateAwaitingReply
	return nil
}

// AppendAssistant records the reply to the pending user question.
func (s *Session) AppendAssistant(content string) error {
	if s.state != StateAwaitingReply {
		return ErrNotAwaitingReply
	}
	s.messages = append(s.messages, Message{Role: RoleAssistant, Content: content, At: time.Now()})
	s.state = StateReady
	return nil
}

// AbortTurn cancels a pending question after a failed generation. The user
// message stays in the transcript but no assistant entry is added, and the
// session accepts new questions again.
func (s *Session) AbortTurn() {
	if s.state != StateAwaitingReply {
		return
	}
	s.state = StateReady
}

// Messages returns a copy of the transcript, system instruction first.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages including the system instruction.
func (s *Session) Len() int { return len(s.messages) }
