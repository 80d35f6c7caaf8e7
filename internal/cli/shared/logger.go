package shared

import (
	"io"
	"log/slog"

	"github.com/andotools/andocheck/internal/config"
)

// NewLogger builds the CLI logger. debug overrides the configured level.
func NewLogger(w io.Writer, cfg *config.Configuration, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if cfg != nil {
		level = cfg.SlogLevel()
	}
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
