package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index PDF documents into the local vector store",
	Long: `Ingest reads every *.pdf in the documents directory, extracts and chunks
its text, embeds the chunks, and writes them to the local vector index.

Re-running ingest is safe: documents already indexed (by content hash) are
skipped, and a failing document never aborts the rest of the batch.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "directory of PDFs (defaults to configured documents_dir)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := ingestDir
	if dir == "" {
		dir = a.Config.DocumentsDir
	}

	report, err := a.Pipeline.Run(ctx, dir)
	if err != nil {
		return fmt.Errorf("ingestion: %w", err)
	}

	fmt.Printf("Indexed %d document(s), %d chunk(s)\n", report.Indexed, report.Chunks)
	if report.Skipped > 0 {
		fmt.Printf("Skipped %d already-indexed document(s)\n", report.Skipped)
	}
	for _, f := range report.Failures {
		fmt.Printf("Failed: %s: %v\n", f.Source, f.Err)
	}
	if report.Failed() > 0 {
		return fmt.Errorf("%d document(s) failed", report.Failed())
	}
	return nil
}
