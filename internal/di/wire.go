//go:build wireinject
// +build wireinject

package di

import (
	"MacroGauge/pkg/config"
	"MacroGauge/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Data layer
		ProvideStore,
		ProvideCache,

		// Domain services
		ProvideBriefService,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
