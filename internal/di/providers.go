package di

import (
	"context"
	"fmt"

	"MacroGauge/internal/brief"
	"MacroGauge/internal/handler/api"
	"MacroGauge/internal/loader"
	"MacroGauge/pkg/cache"
	"MacroGauge/pkg/config"
	xhttp "MacroGauge/pkg/http"
	applogger "MacroGauge/pkg/logger"
	"MacroGauge/pkg/metrics"
	"MacroGauge/pkg/server"

	"MacroGauge/internal/analysis"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideStore loads the datasets eagerly so a broken data directory
// fails startup instead of serving an empty dashboard.
func ProvideStore(cfg *config.Config, l *applogger.Logger, m *metrics.Recorder) (*loader.Store, error) {
	ld := loader.New(cfg.Data.Dir, l)
	store, err := loader.NewStore(ld, l, m)
	if err != nil {
		return nil, fmt.Errorf("dataset store: %w", err)
	}
	return store, nil
}

// ProvideCache creates the snapshot/brief cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "redis" {
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideBriefService creates the snapshot builder.
func ProvideBriefService(
	cfg *config.Config,
	store *loader.Store,
	c cache.Service,
	l *applogger.Logger,
	m *metrics.Recorder,
) *brief.Service {
	svc := brief.NewService(store, c, l, m, brief.Config{
		Window:       cfg.Analysis.Window,
		StressWindow: cfg.Analysis.StressWindow,
		Inflation: analysis.InflationBand{
			Target: cfg.Analysis.InflationTarget,
			Low:    cfg.Analysis.InflationLow,
			High:   cfg.Analysis.InflationHigh,
		},
		Bases: analysis.CommodityBases{
			Copper: cfg.Analysis.CopperBase,
			Oil:    cfg.Analysis.OilBase,
		},
		Title:    cfg.Brief.Title,
		CacheTTL: cfg.Cache.TTL,
	})
	// dataset reloads drop the derived caches
	store.OnReload(func() { svc.Invalidate(context.Background()) })
	return svc
}

// ProvideHandler creates the HTTP handler registering all routes.
func ProvideHandler(l *applogger.Logger, svc *brief.Service, store *loader.Store) xhttp.Handler {
	return api.NewDashboardHandler(l, svc, store)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	store *loader.Store,
	c cache.Service,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, store, c, handler)
}
