package di

import (
	"fmt"
	"time"

	"FinDash/internal/display"
	drepo "FinDash/internal/domain/repository"
	"FinDash/internal/handler/api"
	internalrepo "FinDash/internal/repository"
	"FinDash/internal/service/dashapi"
	"FinDash/internal/service/ratelimit"
	"FinDash/internal/service/report"
	"FinDash/internal/usecase"
	"FinDash/pkg/cache"
	"FinDash/pkg/config"
	xhttp "FinDash/pkg/http"
	pkgkafka "FinDash/pkg/kafka"
	applogger "FinDash/pkg/logger"
	"FinDash/pkg/metrics"
	"FinDash/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	userAgent        = "Dashboard/1.0"
	limiterIdleAfter = 10 * time.Minute
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or a no-op one when
// metrics are disabled.
func ProvideMetrics(cfg *config.Config) drepo.DashboardMetrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New()
}

// ProvideHTTPClient creates the client used to reach the status service.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Dashboard.RequestTimeout),
		xhttp.WithHeader("User-Agent", userAgent),
	)
}

// ProvideSnapshotSource creates the dashboard-data fetcher.
func ProvideSnapshotSource(client *xhttp.Client, cfg *config.Config) drepo.SnapshotSource {
	return dashapi.New(client, cfg.DashboardURL())
}

// ProvideFormatter creates the report formatter for the configured zone.
func ProvideFormatter(cfg *config.Config) (*report.Formatter, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("formatter location: %w", err)
	}
	return report.NewFormatter(loc), nil
}

// ProvideBoard creates the in-memory region board.
func ProvideBoard() *display.Board {
	return display.NewBoard()
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideRedis connects to Redis, or returns nil when Redis is disabled.
func ProvideRedis(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	c, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPool(cfg.Redis.PoolSize, cfg.Redis.MinIdle, cfg.Redis.PoolWait),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return c, nil
}

// ProvideSinks starts an async worker for every enabled network display.
func ProvideSinks(
	cfg *config.Config,
	producer *pkgkafka.Producer,
	redis *cache.RedisCache,
	m drepo.DashboardMetrics,
	l *applogger.Logger,
) *display.Sinks {
	sinks := &display.Sinks{}
	if producer != nil {
		sinks.Add(display.NewAsync("kafka",
			internalrepo.NewKafkaDisplay(producer, cfg.Kafka.Topic),
			cfg.Kafka.BufferSize, m, l))
	}
	if redis != nil {
		sinks.Add(display.NewAsync("redis",
			internalrepo.NewRedisDisplay(redis, cfg.Redis.TTL),
			cfg.Redis.BufferSize, m, l))
	}
	return sinks
}

// ProvideDisplay fans region writes out to the terminal, the board and the
// network sinks, each restricted to its configured regions.
func ProvideDisplay(cfg *config.Config, board *display.Board, sinks *display.Sinks) drepo.Display {
	var outs []drepo.Display
	if cfg.Dashboard.Terminal {
		outs = append(outs, display.NewTerminal())
	}
	outs = append(outs, board)
	for _, w := range sinks.Workers() {
		regions := cfg.Redis.Regions
		if w.Name() == "kafka" {
			regions = cfg.Kafka.Regions
		}
		outs = append(outs, display.NewFilter(w, regions))
	}
	return display.NewFanout(outs...)
}

// ProvideScheduler creates the cron-backed scheduler.
func ProvideScheduler(l *applogger.Logger) usecase.Scheduler {
	return usecase.NewCronScheduler(l)
}

// ProvideDashboard creates the dashboard use case.
func ProvideDashboard(
	source drepo.SnapshotSource,
	formatter *report.Formatter,
	disp drepo.Display,
	sched usecase.Scheduler,
	m drepo.DashboardMetrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Dashboard {
	return usecase.NewDashboard(source, formatter, disp, sched, m, l, usecase.Options{
		RefreshInterval: cfg.Dashboard.RefreshInterval,
		APIInterval:     cfg.Dashboard.APIInterval,
		RequestTimeout:  cfg.Dashboard.RequestTimeout,
		DiscardStale:    cfg.Dashboard.DiscardStale,
	})
}

// ProvideHTTPServer creates the read-only HTTP server, or nil when disabled.
// The rate limiter's idle buckets are swept on the dashboard scheduler.
func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	board *display.Board,
	dash *usecase.Dashboard,
	sched usecase.Scheduler,
) (*xhttp.Server, error) {
	if !cfg.Server.Enabled {
		return nil, nil
	}

	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer, cfg.Metrics.Path))
	}
	if rl := cfg.Server.RateLimit; rl.RPS > 0 {
		limiter := ratelimit.New(float64(rl.Burst), rl.RPS)
		if err := sched.Every(time.Minute, func() { limiter.Sweep(limiterIdleAfter) }); err != nil {
			return nil, fmt.Errorf("rate limiter sweep: %w", err)
		}
		opts = append(opts, xhttp.WithRateLimit(limiter))
	}

	h := api.NewDashboardEchoHandler(l, board, dash)
	return xhttp.NewServer(h, l, opts...), nil
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	dash *usecase.Dashboard,
	srv *xhttp.Server,
	sinks *display.Sinks,
	producer *pkgkafka.Producer,
	redis *cache.RedisCache,
) *server.App {
	return server.New(cfg, l, dash, srv, sinks, producer, redis)
}
