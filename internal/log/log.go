// Package log provides the logging infrastructure for paperchat.
//
// Loggers are plain *slog.Logger values created once at startup and handed to
// components through their constructors. Components add context with
// logger.With("component", ...) rather than reaching for a global.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is an alias for *slog.Logger so constructors can name the dependency
// without forcing callers through a custom interface.
type Logger = *slog.Logger

// Config controls handler construction.
type Config struct {
	// Level is the minimum level as a string: "debug", "info", "warn", "error".
	// Empty means "info".
	Level string

	// JSON switches output from text to JSON records.
	JSON bool
}

// New returns a logger writing to stderr with the given configuration.
// An unknown level is an error rather than a silent fallback.
func New(cfg Config) (Logger, error) {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter returns a logger writing to w. Used by tests to capture output.
func NewWithWriter(w io.Writer, cfg Config) (Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// Nop returns a logger that discards everything. Test use only.
func Nop() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
