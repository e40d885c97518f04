// Package logging configures the process-wide slog logger.
//
// Logs always go to stderr; stdout is reserved for snapshots and reports.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
// Unknown or empty names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// NewTextLogger returns a text logger writing to w at the given level.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewStructuredLogger returns a JSON logger writing to w, tagged with the
// module name and version.
func NewStructuredLogger(w io.Writer, name, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
	})
	return slog.New(h).With(
		slog.String("module", name),
		slog.String("version", version),
	)
}

// SetDefaultCLILogger installs a text logger on stderr as the slog default.
func SetDefaultCLILogger(level slog.Level) {
	slog.SetDefault(NewTextLogger(os.Stderr, level))
}

// SetDefaultStructuredLoggerWithLevel installs a JSON logger on stderr as the
// slog default.
func SetDefaultStructuredLoggerWithLevel(name, version string, level slog.Level) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, name, version, level))
}
