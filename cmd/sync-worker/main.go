package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yxy-sys/stocksync/internal/poller"
	"github.com/yxy-sys/stocksync/pkg/amazon"
	"github.com/yxy-sys/stocksync/pkg/config"
	"github.com/yxy-sys/stocksync/pkg/ebay"
	"github.com/yxy-sys/stocksync/pkg/logger"
	"github.com/yxy-sys/stocksync/pkg/metrics"
	"github.com/yxy-sys/stocksync/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "sync-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sync-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mappings, err := cfg.Poller.MappingEntries()
	if err != nil {
		logg.Error(context.Background(), "failed to parse listing mappings", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewPollerMetrics(prometheus.DefaultRegisterer)

	stockJob, err := poller.NewStockSyncJob(poller.StockSyncJobParams{
		Logger:     logg,
		Amazon:     amazon.NewClient(cfg.Amazon),
		Ebay:       ebay.NewClient(cfg.Ebay),
		Mappings:   mappings,
		LowSignals: cfg.Poller.LowSignals(),
		Metrics:    metricsCollector,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stock sync job", err)
		os.Exit(1)
	}

	lock, err := poller.NewRedisLock(redisClient, cfg.Poller.LockKey, cfg.Poller.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create poller lock", err)
		os.Exit(1)
	}

	service, err := poller.NewService(poller.ServiceParams{
		Logger:   logg,
		Registry: poller.NewRegistry(stockJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Poller.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create poller service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Poller.Interval.String(),
	})

	metricsServer := &http.Server{Addr: cfg.Poller.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "metrics server stopped unexpectedly", err)
		}
	}()
	defer metricsServer.Shutdown(context.Background())

	logg.Info(ctx, "starting sync worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sync worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sync worker shutting down gracefully")
}
