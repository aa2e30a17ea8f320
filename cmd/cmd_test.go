package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aitechroberts/paperchat/internal/rag"
	"github.com/aitechroberts/paperchat/internal/session"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"ingest", "chat", "ask", "fetch", "version"}
	got := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "subcommand %q not registered", name)
	}
}

func TestAskRequiresArgs(t *testing.T) {
	err := askCmd.Args(askCmd, nil)
	assert.Error(t, err)
	assert.NoError(t, askCmd.Args(askCmd, []string{"what", "is", "attention?"}))
}

func TestMarkdownRendererFallback(t *testing.T) {
	var r *markdownRenderer
	assert.Equal(t, "# raw", r.Render("# raw"))

	empty := &markdownRenderer{}
	assert.Equal(t, "plain text", empty.Render("plain text"))
}

func TestHandleChatCommand(t *testing.T) {
	sess := session.New(rag.SystemInstruction)
	renderer := &markdownRenderer{}

	assert.True(t, handleChatCommand("/exit", sess, renderer))
	assert.True(t, handleChatCommand("/quit", sess, renderer))
	assert.False(t, handleChatCommand("/help", sess, renderer))
	assert.False(t, handleChatCommand("/history", sess, renderer))
	assert.False(t, handleChatCommand("/bogus", sess, renderer))
}
