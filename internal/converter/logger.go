// =============================================================================
// BOM Converter - Logging
// =============================================================================
//
// The converter logs through a small interface so callers can inject their
// own logger. The default implementation wraps log/slog.
//
// =============================================================================

package converter

import (
	"log/slog"
	"os"
)

// Logger is the logging interface used by the converter.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewLogger returns the default slog-backed logger at the given level
// ("debug", "info", "warn", "error").
func NewLogger(level string) Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
