package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/config"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/handler"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/model"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/pagination"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/repository"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/service"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/upstream"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/whatsapp"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Initialize key-value store (Redis, Postgres or in-memory)
	var kvStore repository.KVStore
	switch cfg.Store.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		kvStore = repository.NewRedisKVStore(redisClient)
		logger.Info("using Redis key-value store")
	case "postgres":
		db, err := config.NewPostgresDB(cfg.Database.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		if cfg.Database.Postgres.AutoMigrate {
			if err := model.AutoMigrate(db); err != nil {
				logger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			logger.Info("database migration completed")
		}
		kvStore = repository.NewPGKVStore(db)
		logger.Info("using Postgres key-value store")
	case "memory":
		kvStore = repository.NewMemoryKVStore()
		logger.Info("using in-memory key-value store")
	default:
		logger.Fatal("unknown store backend", zap.String("backend", cfg.Store.Backend))
	}

	// 4. Initialize upstream product service client
	if cfg.Upstream.BaseURL == "" {
		logger.Fatal("upstream.base_url is required")
	}
	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	logger.Info("upstream product service configured", zap.String("base_url", cfg.Upstream.BaseURL))

	// 5. Initialize sessions and formatter
	formatter := whatsapp.NewFormatter(cfg.WhatsApp.Number)
	sessions := service.NewSessionRegistry(kvStore, cfg.Session.TTL, cfg.Catalog.PlaceholderImage, formatter)

	// 6. Initialize services
	cartService := service.NewCartService(sessions, upstreamClient, logger)
	favoriteService := service.NewFavoriteService(sessions, upstreamClient, logger)
	searchService := service.NewSearchService(upstreamClient, logger)
	fetcher := pagination.NewFetcher(nil)
	fetcher.OnLoading(
		func() { logger.Debug("page fetch started") },
		func() { logger.Debug("page fetch finished") },
	)
	pageService, err := service.NewPageService(cfg.Upstream.BaseURL, fetcher)
	if err != nil {
		logger.Fatal("failed to init page service", zap.Error(err))
	}

	// 7. Initialize handlers
	cartHandler := handler.NewCartHandler(cartService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	searchHandler := handler.NewSearchHandler(searchService)
	pageHandler := handler.NewPageHandler(pageService)

	// 8. Setup router
	router := handler.SetupRouter(cfg, logger, cartHandler, favoriteHandler, searchHandler, pageHandler)

	// 9. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 10. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
