package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/registry"
)

// App encapsulates one configured pipeline: a logger, a shape registry
// and the run configuration.
type App struct {
	logW   io.Writer
	outW   io.Writer
	logger *slog.Logger
	reg    *registry.Registry
	cfg    *Config
}

// New builds an App with its own isolated logger. Logs go to logW,
// exported models without an explicit path go to outW. A nil or
// inconsistent registry is a wiring bug and panics.
func New(logW, outW io.Writer, cfg *Config, reg *registry.Registry) *App {
	if reg == nil {
		panic("app: nil shape registry")
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// A manifest that disagrees with its Go input struct is a
	// programmer error, so we panic.
	ctx := ctxlog.WithLogger(context.Background(), logger)
	if err := reg.ValidateParity(ctx); err != nil {
		panic(err)
	}

	return &App{
		logW:   logW,
		outW:   outW,
		logger: logger,
		reg:    reg,
		cfg:    cfg,
	}
}

// Logger returns the app's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
