package app

import (
	"log/slog"

	"github.com/treykane/side-by-side/internal/logging"
)

// appLog is the package-level structured logger for the host surface.
//
// The log level is controlled by SIDE_BY_SIDE_LOG_LEVEL (see the logging
// package). Point SIDE_BY_SIDE_LOG_FILE at a file while the UI is running so
// log lines do not land on the terminal.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// logs a structured error entry with full context.
//
// The status parameter is displayed verbatim in the UI, while the err and any
// additional key-value attrs are included only in the log entry.
//
//	m.setStatusError("Divider drag failed", err, "x", msg.X)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
