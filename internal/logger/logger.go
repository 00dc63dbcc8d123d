// Package logger constructs the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a structured logger with level from string. Logs go to
// stderr so generated output and shell pipelines stay clean.
func New(level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// Discard returns a logger that drops everything. Used by components
// that accept an optional logger and by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
