package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FinDash/internal/display"
	"FinDash/internal/usecase"
	"FinDash/pkg/cache"
	"FinDash/pkg/config"
	xhttp "FinDash/pkg/http"
	pkgkafka "FinDash/pkg/kafka"
	applogger "FinDash/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	dashboard  *usecase.Dashboard
	httpServer *xhttp.Server
	sinks      *display.Sinks
	producer   *pkgkafka.Producer
	redis      *cache.RedisCache
}

// New creates a new App. httpServer, producer and redis may be nil when the
// matching feature is disabled.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	dashboard *usecase.Dashboard,
	httpServer *xhttp.Server,
	sinks *display.Sinks,
	producer *pkgkafka.Producer,
	redis *cache.RedisCache,
) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		dashboard:  dashboard,
		httpServer: httpServer,
		sinks:      sinks,
		producer:   producer,
		redis:      redis,
	}
}

// Run starts the dashboard and the optional HTTP server, then blocks until
// ctx is cancelled or SIGINT/SIGTERM arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.dashboard.Start(ctx); err != nil {
		return err
	}

	if a.httpServer != nil {
		if err := a.httpServer.Start(); err != nil {
			a.logger.Error("http server start error", applogger.Error(err))
			a.shutdown()
			return err
		}
	}

	a.logger.Info("findash running",
		applogger.String("env", a.cfg.Environment),
		applogger.String("source", a.cfg.DashboardURL()),
		applogger.Bool("http", a.httpServer != nil),
		applogger.Int("sinks", a.sinks.Len()),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	a.shutdown()
	return nil
}

// shutdown stops producers of region writes before their consumers.
func (a *App) shutdown() {
	a.dashboard.Stop()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(context.Background()); err != nil {
			a.logger.Error("http shutdown error", applogger.Error(err))
		}
	}

	if err := a.sinks.Close(); err != nil {
		a.logger.Warn("display sinks close error", applogger.Error(err))
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
}
