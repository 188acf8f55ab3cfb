package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/usedcar-api/api/swagger"
	"github.com/noah-isme/usedcar-api/internal/handler"
	"github.com/noah-isme/usedcar-api/internal/repository"
	"github.com/noah-isme/usedcar-api/internal/scheduler"
	"github.com/noah-isme/usedcar-api/internal/service"
	"github.com/noah-isme/usedcar-api/pkg/cache"
	"github.com/noah-isme/usedcar-api/pkg/config"
	"github.com/noah-isme/usedcar-api/pkg/database"
	"github.com/noah-isme/usedcar-api/pkg/jobs"
	"github.com/noah-isme/usedcar-api/pkg/logger"
)

// @title Used Car Marketplace API
// @version 1.0.0
// @description Browsing, search and account endpoints for the used-car marketplace
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database unavailable", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Catalog.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	carRepo := repository.NewCarRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, "usedcar")
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, redisClient != nil)

	catalog := service.NewCatalogService(carRepo, cacheSvc, metrics, logr, service.CatalogConfig{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		CacheTTL:        cfg.Catalog.CacheTTL,
	})

	refreshQueue := jobs.NewQueue("catalog-refresh", catalog.Refresh, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.Retries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
		Observer:   metrics.ObserveJob,
	})
	refreshQueue.Start(ctx)
	defer refreshQueue.Stop()

	warmer := scheduler.New(catalog, cfg.Catalog.WarmSchedule, logr)
	if redisClient != nil {
		if err := warmer.Start(ctx); err != nil {
			logr.Sugar().Fatalw("catalog warmer", "error", err)
		}
		defer warmer.Stop()
	}

	deps := routeDeps{
		cars:     handler.NewCarHandler(catalog),
		exports:  handler.NewExportHandler(service.NewExportService(catalog, service.ExportConfig{Enabled: cfg.Export.Enabled, MaxRows: cfg.Export.MaxRows}, logr)),
		sellers:  handler.NewSellerHandler(service.NewSellerService(repository.NewSellerRepository(db), carRepo, logr)),
		listings: handler.NewListingHandler(service.NewListingService(carRepo, refreshQueue, validate, logr)),
		account: handler.NewAccountHandler(
			service.NewSavedListingService(repository.NewSavedListingRepository(db), carRepo, validate),
			service.NewEnquiryService(repository.NewEnquiryRepository(db), carRepo, validate, logr),
			service.NewPackageService(repository.NewPackageRepository(db)),
		),
		ops: handler.NewMetricsHandler(metrics, map[string]handler.Pinger{
			"postgres": db,
			"redis": handler.PingFunc(func(ctx context.Context) error {
				if redisClient == nil {
					return nil
				}
				return cacheRepo.Ping(ctx)
			}),
		}),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, logr, metrics, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
