package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/tickcore/internal/config"
	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/host"
	"github.com/vk/tickcore/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Each instance carries its own isolated logger and registry.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	registry *registry.Registry
	model    *config.Model

	httpServer *http.Server
	handle     atomic.Pointer[host.Handle]
}

// NewApp constructs the application: logger, manifest load, and registry
// population. A manifest that fails to load is a startup error for the
// caller to map to an exit status.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := config.New()
	if cfg.ManifestPath != "" {
		var err error
		model, err = loader.Load(ctx, cfg.ManifestPath)
		if err != nil {
			return nil, &host.StartupError{Err: fmt.Errorf("failed to load configuration: %w", err)}
		}
		logger.Debug("Configuration loaded and translated into unified model.")
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All subsystem modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		model:    model,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
