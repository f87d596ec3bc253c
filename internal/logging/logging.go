// Package logging builds the process logger. Log lines go to stderr; stdout
// is reserved for report output.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a text slog.Logger at the given level. Unrecognized level
// strings fall back to info.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
