package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/aitechroberts/paperchat/internal/app"
	"github.com/aitechroberts/paperchat/internal/config"
	"github.com/aitechroberts/paperchat/internal/log"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "0.1.0"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

// Execute is the entry point called from main. A .env file in the working
// directory is loaded first so GEMINI_API_KEY can live there instead of the
// shell environment.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

// setup loads configuration, builds the logger, and wires the application.
// Shared by every command that needs the full pipeline.
func setup(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := log.New(log.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	slog.SetDefault(logger)

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		if os.Getenv("GEMINI_API_KEY") == "" {
			fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable not set")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "To set your API key:")
			fmt.Fprintln(os.Stderr, "  export GEMINI_API_KEY=your-api-key")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Get your API key at: https://ai.google.dev/")
		}
		return nil, err
	}
	return a, nil
}
