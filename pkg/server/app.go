package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"MacroGauge/internal/loader"
	"MacroGauge/pkg/cache"
	"MacroGauge/pkg/config"
	xhttp "MacroGauge/pkg/http"
	applogger "MacroGauge/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	store      *loader.Store
	cache      cache.Service
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	store *loader.Store,
	c cache.Service,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:     cfg,
		logger:  l,
		store:   store,
		cache:   c,
		handler: handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	// Watch the data directory so a replaced CSV refreshes the dashboard
	// without a restart.
	if a.cfg.Data.WatchFiles {
		go func() {
			if err := a.store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("dataset watcher error", applogger.Error(err))
			}
		}()
		a.logger.Info("dataset watcher started", applogger.String("dir", a.cfg.Data.Dir))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("macrogauge started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Strings("datasets", a.store.Datasets()),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
