//go:build wireinject
// +build wireinject

package di

import (
	"ChartPulse/pkg/config"
	"ChartPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Upstream and analysis
		ProvideBarProvider,
		ProvideAssembler,

		// Infrastructure
		ProvideBytesCache,
		ProvideRateLimiter,
		ProvideSymbolStore,
		ProvideReportPublisher,

		// Use cases
		ProvideReportUseCase,
		ProvideInfoUseCase,
		ProvideSymbolsUseCase,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
