package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
)

// New creates a logger for cfg: JSON at info level in production, text at
// debug level otherwise.
func New(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg.IsProduction())
}

func newLogger(w io.Writer, production bool) *slog.Logger {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}
