package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/kiranalabs/kirana-voice-backend/api/routes"
	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	"github.com/kiranalabs/kirana-voice-backend/internal/fraud"
	"github.com/kiranalabs/kirana-voice-backend/internal/orders"
	"github.com/kiranalabs/kirana-voice-backend/internal/session"
	"github.com/kiranalabs/kirana-voice-backend/pkg/config"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
	redispkg "github.com/kiranalabs/kirana-voice-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	cat, err := catalog.Load(cfg.Store.CatalogPath)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}
	index, err := catalog.BuildIndex(cat.Items)
	if err != nil {
		logg.Error(context.Background(), "failed to index catalog", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(orders.NewFileStore(cfg.Store.OrdersDir), nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	fraudSvc, err := fraud.NewService(fraud.NewFileStore(cfg.Store.FraudDBPath), nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create fraud case service", err)
		os.Exit(1)
	}

	var redisClient *redispkg.Client
	var snapshots session.SnapshotStore
	var redisPinger redispkg.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err = redispkg.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		snapshots = redisClient
		redisPinger = redisClient
	}

	sessions := session.NewManager(snapshots, cfg.Session.TTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	toolMetrics := metrics.NewToolMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"items":   index.Len(),
		"recipes": cat.Recipes.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, toolMetrics, metricsHandler, index, cat.Recipes, sessions, ordersSvc, fraudSvc, redisPinger),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	closeErr := server.Shutdown(shutdownCtx)
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(ctx, "error during shutdown", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
