package main

// @title Route Optimizer API
// @version 1.0
// @description Сервис оптимизации порядка обхода мест: геокодирование с кэшем, матрица дорожных расстояний и решение задачи коммивояжёра.
// @description
// @description Основные возможности:
// @description - Разрешение названий мест в координаты через кэш и цепочку провайдеров
// @description - Подсказки мест по частичному вводу
// @description - Матрица дорожных расстояний с парной добивкой недостающих ячеек
// @description - Точный порядок обхода для малых задач, эвристика ближайшего соседа для остальных

// @host localhost:8080
// @BasePath /

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/route-optimizer/docs"
	"github.com/route-optimizer/internal/config"
	httpDelivery "github.com/route-optimizer/internal/delivery/http"
	"github.com/route-optimizer/internal/delivery/http/handler"
	"github.com/route-optimizer/internal/infrastructure/nominatim"
	"github.com/route-optimizer/internal/infrastructure/osrm"
	"github.com/route-optimizer/internal/infrastructure/photon"
	"github.com/route-optimizer/internal/metrics"
	"github.com/route-optimizer/internal/pkg/logger"
	"github.com/route-optimizer/internal/pkg/ratelimit"
	"github.com/route-optimizer/internal/repository/cache"
	"github.com/route-optimizer/internal/repository/geocache"
	"github.com/route-optimizer/internal/repository/postgres"
	"github.com/route-optimizer/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Route Optimizer")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 3. Register Prometheus collectors
	metrics.RegisterDefault()

	// 4. Connections required by the selected cache backend
	var (
		redisClient *cache.Redis
		rawRedis    *redis.Client
		db          *postgres.DB
	)

	if cfg.Cache.Backend == geocache.BackendRedis {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		rawRedis = redisClient.Client()
		log.Info("Redis connected")
	}

	if cfg.Cache.Backend == geocache.BackendPostgres {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		log.Info("PostgreSQL connected")
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if redisClient != nil {
		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
	}
	if db != nil {
		if err := db.Health(ctx); err != nil {
			log.Fatal("PostgreSQL health check failed", zap.Error(err))
		}
	}

	// 6. Initialize geocode cache
	geocodeCache, err := geocache.New(ctx, &cfg.Cache, rawRedis, db, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to initialize geocode cache", zap.Error(err))
	}

	log.Info("Geocode cache initialized", zap.String("backend", cfg.Cache.Backend))

	// 7. Geocoding providers: основной без ограничений, fallback
	// с вежливым интервалом и cooldown после rate limit
	photonClient := photon.NewClient(&cfg.Photon, log)
	nominatimClient := nominatim.NewClient(&cfg.Nominatim, log)

	chain := []usecase.ChainEntry{
		{Provider: photonClient},
		{
			Provider: nominatimClient,
			Gate:     ratelimit.NewGate(cfg.Nominatim.MinInterval),
			Cooldown: cfg.Nominatim.Cooldown,
		},
	}

	osrmClient := osrm.NewClient(&cfg.OSRM, log)

	// 8. Initialize use cases
	resolverUC := usecase.NewResolverUseCase(geocodeCache, chain, cfg.Resolver.Concurrency, log)
	matrixUC := usecase.NewMatrixUseCase(osrmClient, cfg.OSRM.PairwiseConcurrency, log)
	routeUC := usecase.NewRouteUseCase(resolverUC, matrixUC, cfg.Solver.ExactThreshold, log)
	geocodeUC := usecase.NewGeocodeUseCase(resolverUC, log)
	directionsUC := usecase.NewDirectionsUseCase(osrmClient, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers and server
	routeHandler := handler.NewRouteHandler(routeUC, log)
	geocodeHandler := handler.NewGeocodeHandler(geocodeUC, log)
	directionsHandler := handler.NewDirectionsHandler(directionsUC, log)

	server := httpDelivery.NewServer(
		cfg,
		log,
		geocodeCache,
		routeHandler,
		geocodeHandler,
		directionsHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
