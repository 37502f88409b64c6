package logger

import (
	"log/slog"
	"os"
)

// New returns the shared structured logger. Handlers attach request_id and
// actor fields per call site rather than via logger-wide attributes.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
