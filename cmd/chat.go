package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aitechroberts/paperchat/internal/rag"
	"github.com/aitechroberts/paperchat/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat over the indexed documents",
	Long: `Chat starts an interactive loop. Each question retrieves the most
relevant passages from the index and grounds the model's answer in them.
The conversation history lives only for this session.

Commands inside the chat:
  /history   replay the conversation so far
  /help      show available commands
  /exit      leave the chat`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Store.Count() == 0 {
		fmt.Println("The index is empty. Run 'paperchat ingest' first to add documents.")
	}

	sess := session.New(rag.SystemInstruction)
	renderer := newMarkdownRenderer(0)
	fmt.Println("paperchat - ask about your documents (/help for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && err != io.EOF {
				return fmt.Errorf("reading input: %w", err)
			}
			fmt.Println()
			return nil
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := handleChatCommand(input, sess, renderer); quit {
				return nil
			}
			continue
		}

		answer, err := a.Engine.Turn(ctx, sess, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(renderer.Render(answer))
	}
}

// handleChatCommand processes a slash command. Returns true to exit the chat.
func handleChatCommand(input string, sess *session.Session, renderer *markdownRenderer) bool {
	switch input {
	case "/exit", "/quit":
		fmt.Println("Bye.")
		return true
	case "/history":
		printHistory(sess, renderer)
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /history   replay the conversation so far")
		fmt.Println("  /help      show this help")
		fmt.Println("  /exit      leave the chat")
	default:
		fmt.Printf("Unknown command %q (try /help)\n", input)
	}
	return false
}

func printHistory(sess *session.Session, renderer *markdownRenderer) {
	msgs := sess.Messages()
	if len(msgs) <= 1 {
		fmt.Println("No conversation yet.")
		return
	}
	for _, m := range msgs {
		switch m.Role {
		case session.RoleSystem:
			// The system instruction is plumbing, not conversation.
		case session.RoleUser:
			fmt.Printf("You: %s\n", m.Content)
		case session.RoleAssistant:
			fmt.Printf("Assistant: %s\n", renderer.Render(m.Content))
		}
	}
}
