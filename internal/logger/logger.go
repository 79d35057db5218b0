// Package logger provides structured logging for nlpres.
// It uses Go's slog package with configurable levels and formats.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a slog Logger writing to stdout with the specified level and
// format and installs it as the default logger. If jsonOutput is true, logs
// are formatted as JSON, otherwise as text.
func New(levelStr string, jsonOutput bool) *slog.Logger {
	logger := slog.New(NewHandler(os.Stdout, levelStr, jsonOutput))
	slog.SetDefault(logger)
	return logger
}

// NewHandler builds the handler used by New on an arbitrary writer.
func NewHandler(w io.Writer, levelStr string, jsonOutput bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}

	if jsonOutput {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a configured level name to an slog.Level. Unknown names
// fall back to info.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
