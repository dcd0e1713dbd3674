// Package main is the entry point for the transfer server.
// It wires configuration, storage and the HTTP layer, then serves until
// interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"moneytransfer/internal/config"
	"moneytransfer/internal/handlers"
	applogger "moneytransfer/internal/logger"
	"moneytransfer/internal/repositories"
	"moneytransfer/internal/repositories/cache"
	"moneytransfer/internal/routes"
	"moneytransfer/internal/services/transfer"
	"moneytransfer/internal/telemetry"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const serviceName = "moneytransfer"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := applogger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := repositories.NewPostgres(cfg.DatabaseURL, repositories.DBConfig{
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}, zl)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zl.Fatal("failed to get database instance", zap.Error(err))
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			zl.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	healthChecks := map[string]handlers.HealthCheck{
		"database": sqlDB.PingContext,
	}

	accounts := repositories.NewAccountRepository(db)
	if cfg.AccountCacheTTL > 0 {
		redisClient := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				zl.Warn("failed to close redis connection", zap.Error(err))
			}
		}()
		if err := cache.HealthCheck(context.Background(), redisClient); err != nil {
			zl.Warn("redis unavailable, account lookups will hit the database", zap.Error(err))
		}

		accounts = cache.NewAccountRepository(accounts, redisClient, cfg.AccountCacheTTL, zl.Named("cache"))
		healthChecks["redis"] = func(ctx context.Context) error {
			return cache.HealthCheck(ctx, redisClient)
		}
	}

	if cfg.OTelCollectorEndpoint != "" {
		mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.ProviderConfig{
			ServiceName:       serviceName,
			CollectorEndpoint: cfg.OTelCollectorEndpoint,
			ExportInterval:    cfg.MetricsExportInterval,
		})
		if err != nil {
			zl.Fatal("failed to create meter provider", zap.Error(err))
		}
		otel.SetMeterProvider(mp)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := mp.Shutdown(ctx); err != nil {
				zl.Warn("failed to flush metrics", zap.Error(err))
			}
		}()
		zl.Info("exporting metrics", zap.String("endpoint", cfg.OTelCollectorEndpoint))
	} else {
		zl.Info("metrics export disabled, OTEL_EXPORTER_OTLP_ENDPOINT is not set")
	}

	metrics, err := telemetry.NewTransferMetrics(otel.Meter(serviceName))
	if err != nil {
		zl.Fatal("failed to create metrics", zap.Error(err))
	}

	transfers := transfer.NewService(
		accounts,
		repositories.NewLedgerRepository(db),
		zl.Named("transfer"),
		metrics,
	)

	app := routes.NewApp()
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	routes.SetupRoutes(app, routes.Dependencies{
		Transfers:       transfers,
		HealthChecks:    healthChecks,
		Logger:          zl.Named("http"),
		JWTSecret:       cfg.JWTSecret,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		zl.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}
}
