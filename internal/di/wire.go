//go:build wireinject
// +build wireinject

package di

import (
	"StarChart/pkg/config"
	"StarChart/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Engine and caching
		ProvideEngine,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaConsumer,

		// Repositories
		ProvideArchive,

		// Use cases
		ProvideChartService,
		ProvideArchiveService,
		ProvideSnapshotHandler,
		ProvideTransitStream,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
