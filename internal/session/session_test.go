package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const systemInstruction = "You are a helpful assistant."

func TestNewSeedsSystemMessage(t *testing.T) {
	s := New(systemInstruction)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, StateEmpty, s.State())
	require.Equal(t, 1, s.Len())

	msgs := s.Messages()
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, systemInstruction, msgs[0].Content)
}

func TestSessionIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, New(systemInstruction).ID(), New(systemInstruction).ID())
}

func TestOneCompleteTurn(t *testing.T) {
	s := New(systemInstruction)

	require.NoError(t, s.AppendUser("what is attention?"))
	assert.Equal(t, StateAwaitingReply, s.State())

	require.NoError(t, s.AppendAssistant("a weighting mechanism."))
	assert.Equal(t, StateReady, s.State())

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Equal(t, "what is attention?", msgs[1].Content)
	assert.Equal(t, RoleAssistant, msgs[2].Role)
	assert.Equal(t, "a weighting mechanism.", msgs[2].Content)
}

func TestWrongStateAppends(t *testing.T) {
	s := New(systemInstruction)

	// Assistant reply with no pending question.
	assert.ErrorIs(t, s.AppendAssistant("unprompted"), ErrNotAwaitingReply)

	require.NoError(t, s.AppendUser("first"))

	// Second question before the first is answered.
	assert.ErrorIs(t, s.AppendUser("second"), ErrAwaitingReply)

	require.NoError(t, s.AppendAssistant("answer"))
	assert.ErrorIs(t, s.AppendAssistant("again"), ErrNotAwaitingReply)
}

func TestAbortTurnKeepsUserMessage(t *testing.T) {
	s := New(systemInstruction)
	require.NoError(t, s.AppendUser("doomed question"))

	s.AbortTurn()
	assert.Equal(t, StateReady, s.State())

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, RoleUser, msgs[1].Role)

	// The session accepts a new question afterwards.
	require.NoError(t, s.AppendUser("retry"))
	require.NoError(t, s.AppendAssistant("answer"))
	assert.Equal(t, 4, s.Len())
}

func TestAbortTurnNoopWhenNotAwaiting(t *testing.T) {
	s := New(systemInstruction)
	s.AbortTurn()
	assert.Equal(t, StateEmpty, s.State())
	assert.Equal(t, 1, s.Len())
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := New(systemInstruction)
	require.NoError(t, s.AppendUser("question"))

	msgs := s.Messages()
	msgs[0].Content = "tampered"

	assert.Equal(t, systemInstruction, s.Messages()[0].Content)
}
