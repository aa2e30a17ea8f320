package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aitechroberts/paperchat/internal/config"
	"github.com/aitechroberts/paperchat/internal/log"
	"github.com/aitechroberts/paperchat/internal/pdf"
)

var fetchOutDir string

var fetchCmd = &cobra.Command{
	Use:   "fetch [url...]",
	Short: "Download PDFs and stamp them with their source URL",
	Long: `Fetch downloads each PDF, writes a copy carrying a SourceURL metadata
property into the documents directory, and removes the temporary download.
With no arguments, the configured source_urls list is used.

Fetch needs no API key; it only touches the document sources.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutDir, "out", "o", "", "output directory (defaults to configured documents_dir)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger, err := log.New(log.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	urls := args
	if len(urls) == 0 {
		urls = cfg.SourceURLs
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given and no source_urls configured")
	}

	outDir := fetchOutDir
	if outDir == "" {
		outDir = cfg.DocumentsDir
	}

	client := &http.Client{Timeout: 2 * time.Minute}
	stamper := pdf.NewStamper(client, outDir, logger)

	result, err := stamper.ProcessURLs(ctx, urls)
	if err != nil {
		return fmt.Errorf("fetching documents: %w", err)
	}

	fmt.Printf("Stamped %d document(s) into %s\n", result.Stamped, outDir)
	if result.Failed > 0 {
		return fmt.Errorf("%d URL(s) failed", result.Failed)
	}
	return nil
}
