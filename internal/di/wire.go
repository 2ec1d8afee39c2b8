//go:build wireinject
// +build wireinject

package di

import (
	"github.com/energy-oracle/eo-api/pkg/config"
	"github.com/energy-oracle/eo-api/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaConsumer,

		// Repositories
		ProvidePriceStore,
		ProvideCarbonStore,

		// Domain services and use cases
		ProvideEngine,
		ProvidePricesUseCase,
		ProvideCarbonUseCase,
		ProvideAnalyticsUseCase,
		ProvideSettlementUseCase,

		// Streaming
		ProvideHub,
		ProvideTickHandler,

		// HTTP surface
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
