// Package cmd implements the paperchat command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paperchat",
	Short: "paperchat - chat with your research papers",
	Long: `paperchat answers questions about a local collection of PDF papers.

Point it at a directory of PDFs (or a list of URLs), ingest them into a
local vector index, then ask questions: each answer is grounded in the
most relevant passages retrieved from your documents.

Running paperchat with no arguments starts an interactive chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
	SilenceUsage: true,
}
