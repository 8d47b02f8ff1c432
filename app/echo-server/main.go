package main

import (
	"context"
	"fmt"
	"log"
	"makeItSell/app/echo-server/router"
	"makeItSell/business/behavior"
	"makeItSell/business/catalog"
	"makeItSell/business/reco"
	"makeItSell/internal/middleware"
	psqlRepo "makeItSell/internal/repository/postgres"
	redisRepo "makeItSell/internal/repository/redis"
	"makeItSell/internal/rest"
	"makeItSell/pkg/config"
	"makeItSell/pkg/database"
	redisdb "makeItSell/pkg/database/redis"
	"makeItSell/pkg/logger"
	"makeItSell/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MakeItSell recommendation service", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis only backs the ranking memo cache; the service runs without it.
	var recoCache *redisRepo.RecoCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without recommendation cache", "error", err)
	} else {
		recoCache = redisRepo.NewRecoCache(redisClient, time.Duration(cfg.Reco.CacheTTLSeconds)*time.Second)
		defer func() {
			if err := redisdb.CloseRedisClient(redisClient); err != nil {
				logger.Error("Failed to close redis client", "error", err)
			}
		}()
	}

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	behaviorRepo := psqlRepo.NewBehaviorRepository(db)
	eventRepo := psqlRepo.NewBehaviorEventRepository(db)
	cfgRepo := psqlRepo.NewRecoConfigRepository(db)

	// Init service
	catalogService := catalog.NewCatalogService(productRepo)
	behaviorService := behavior.NewBehaviorService(behaviorRepo, eventRepo, productRepo)
	engine := reco.NewEngine(productRepo, behaviorRepo, cfgRepo, reco.DefaultConfig())

	// Init handler
	productHandler := rest.NewProductHandler(catalogService)
	behaviorHandler := rest.NewBehaviorHandler(behaviorService, cacheOrNil(recoCache))
	recoHandler := rest.NewRecoHandler(engine, recoCacheOrNil(recoCache))
	recoAdminHandler := rest.NewRecoAdminHandler(engine)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetRecommendationRoutes(api, recoHandler, authRequired)
	router.SetRecoAdminRoutes(api, recoAdminHandler, authRequired, adminOnly)
	router.SetBehaviorRoutes(api, behaviorHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// a typed-nil *RecoCache must become an untyped nil interface, otherwise
// the handlers' nil checks pass and every call panics
func recoCacheOrNil(cache *redisRepo.RecoCache) rest.RecoCache {
	if cache == nil {
		return nil
	}
	return cache
}

func cacheOrNil(cache *redisRepo.RecoCache) rest.CacheInvalidator {
	if cache == nil {
		return nil
	}
	return cache
}
