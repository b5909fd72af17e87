package testutil

import (
	"io"
	"log/slog"

	"github.com/mendresvon/aura-notes-frontend/internal/logger"
)

// MakeNoopLogger returns a Logger that discards all records.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}
