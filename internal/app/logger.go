package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger: JSON in production-style deployments,
// plain text otherwise. Every record carries the service name so the worker
// and server logs can be told apart when aggregated.
func NewLogger(cfg *Config) *slog.Logger {
	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})
	}
	return slog.New(handler).With(slog.String("service", "meridian"))
}
