// Package logger builds the process-wide slog logger from the runtime
// configuration.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gr3edydevel0per/N-Layer-API/internal/config"
)

// New returns a logger at the configured level and installs it as the slog
// default. Production emits JSON for log shippers; everything else gets the
// human-readable text handler.
func New(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.AppEnv) == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
