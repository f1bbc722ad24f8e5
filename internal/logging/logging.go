// Package logging builds the application slog.Logger. Logs go to the writer
// the caller picks; the app sends them to stderr so stdout stays reserved
// for the report tables.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a text-handler slog.Logger at the given level string.
func New(out io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
