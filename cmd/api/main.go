package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cybake-bridge/internal/core/cache"
	"cybake-bridge/internal/core/config"
	"cybake-bridge/internal/core/database"
	"cybake-bridge/internal/core/logger"
	"cybake-bridge/internal/core/server"
	diagadapter "cybake-bridge/internal/features/diagnostics/adapters"
	diaghandler "cybake-bridge/internal/features/diagnostics/handler"
	diagservice "cybake-bridge/internal/features/diagnostics/service"
	importadapter "cybake-bridge/internal/features/imports/adapters"
	importhandler "cybake-bridge/internal/features/imports/handler"
	importservice "cybake-bridge/internal/features/imports/service"
	orderadapter "cybake-bridge/internal/features/orders/adapters"
	orderhandler "cybake-bridge/internal/features/orders/handler"
	orderservice "cybake-bridge/internal/features/orders/service"

	"go.uber.org/zap"
)

// @title Cybake Bridge API
// @version 1.0
// @description Imports Shopify orders into Cybake, keeps an import log and lets operators retry failed imports.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("shopify_store", cfg.Shopify.Store),
		zap.String("shopify_token", logger.Preview(cfg.Shopify.AccessToken)),
	)

	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	// Import log store
	db, err := database.Open(cfg.Database, l, cfg.LogLevel)
	if err != nil {
		l.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	logRepo := importadapter.NewGormLogRepository(db)
	if err := logRepo.Migrate(context.Background()); err != nil {
		l.Fatal("Failed to migrate import_logs", zap.Error(err))
	}

	// Initialize Shopify Adapter and run Health Check
	shopify := orderadapter.NewShopifyAdapter(cfg.Shopify, timeout)
	if err := shopify.HealthCheck(context.Background()); err != nil {
		l.Warn("Shopify Health Check Failed, continuing so diagnostics stay reachable", zap.Error(err))
	} else {
		l.Info("Shopify connection verified")
	}

	cybake := importadapter.NewCybakeAdapter(cfg.Cybake, timeout)

	// Initialize Import Services & Handlers
	importSvc := importservice.NewImportService(shopify, cybake, logRepo)
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
		if err != nil {
			l.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		defer redisCache.Close()

		if err := redisCache.Ping(context.Background()); err != nil {
			l.Warn("Redis unreachable, imports will run without locking until it recovers", zap.Error(err))
		}
		importSvc.WithLocker(importadapter.NewCacheLocker(redisCache), time.Duration(cfg.Redis.LockTTLSeconds)*time.Second)
		l.Info("Import locking enabled")
	}

	importHdl := importhandler.NewImportHandler(importSvc)
	retryHdl := importhandler.NewRetryHandler(importservice.NewRetryService(shopify, cybake, logRepo))
	logHdl := importhandler.NewLogHandler(importservice.NewLogService(logRepo))

	// Initialize Order Preview
	orderHdl := orderhandler.NewOrderHandler(orderservice.NewOrderService(shopify))

	// Initialize Diagnostics
	diagSvc := diagservice.NewDiagnosticsService(
		diagadapter.NewShopifyProber(cfg.Shopify, timeout),
		diagadapter.NewCybakeProber(cfg.Cybake, timeout),
	)
	diagHdl := diaghandler.NewDiagnosticsHandler(diagSvc)

	srv := server.New(cfg)
	if cfg.WebhookSecret == "" {
		l.Warn("WEBHOOK_SECRET is empty, protected routes are open")
	}

	// Register Routes
	srv.App.Use("/api/logs", server.DashboardCORS())
	srv.App.Use("/api/retry", server.DashboardCORS())

	srv.App.Post("/api/import", srv.RequireSecret(), importHdl.Import)
	srv.App.Get("/api/logs", logHdl.List)
	srv.App.Post("/api/retry", retryHdl.Retry)
	srv.App.Get("/api/orders/:id", srv.RequireSecret(), orderHdl.Preview)

	diag := srv.App.Group("/api/diagnostics", srv.RequireSecret())
	diag.Get("/shopify-token", diagHdl.ShopifyToken)
	diag.Get("/shopify-api", diagHdl.ShopifyAPI)
	diag.Get("/cybake-endpoints", diagHdl.CybakeEndpoints)

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down")
	if err := srv.Shutdown(); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}
}
