// Package logging provides a shared, structured logger for side-by-side.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level can be controlled at startup via the
// SIDE_BY_SIDE_LOG_LEVEL environment variable (debug, info, warn, error).
// If unset, the default level is INFO.
//
// The terminal UI owns stdout and the alternate screen, so log output goes to
// stderr by default. Set SIDE_BY_SIDE_LOG_FILE to append logs to a file
// instead; that is the usual setup while the UI is running.
//
// Usage:
//
//	log := logging.New("split")
//	log.Debug("gesture start", "left", g.Left)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	levelEnv = "SIDE_BY_SIDE_LOG_LEVEL"
	fileEnv  = "SIDE_BY_SIDE_LOG_FILE"
)

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every entry.
// If component is empty, the base logger is returned as is. The base logger
// is lazily initialized on the first call.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(openOutput(os.Getenv(fileEnv)), &slog.HandlerOptions{
			Level: parseLevel(os.Getenv(levelEnv)),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// Discard returns a logger that drops every record. Tests use it to keep
// output quiet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// openOutput resolves the log destination. A file that cannot be opened
// falls back to stderr rather than losing logs entirely.
func openOutput(path string) io.Writer {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
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
