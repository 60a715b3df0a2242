//go:build wireinject
// +build wireinject

package di

import (
	"FinDash/pkg/config"
	"FinDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideKafkaProducer,
		ProvideRedis,

		// Displays
		ProvideBoard,
		ProvideSinks,
		ProvideDisplay,

		// Use case
		ProvideSnapshotSource,
		ProvideFormatter,
		ProvideScheduler,
		ProvideDashboard,

		// Application server
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
