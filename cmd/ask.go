package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aitechroberts/paperchat/internal/rag"
	"github.com/aitechroberts/paperchat/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question against the indexed documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question is empty")
	}

	sess := session.New(rag.SystemInstruction)
	answer, err := a.Engine.Turn(ctx, sess, question)
	if err != nil {
		return fmt.Errorf("generating answer: %w", err)
	}

	fmt.Println(newMarkdownRenderer(0).Render(answer))
	return nil
}
