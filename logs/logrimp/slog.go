package logrimp

import (
	"log/slog"

	"github.com/go-logr/logr"
)

// NewSlogLogger returns a logr logger backed by a slog handler.
func NewSlogLogger(logger *slog.Logger) logr.Logger {
	return logr.FromSlogHandler(logger.Handler())
}
