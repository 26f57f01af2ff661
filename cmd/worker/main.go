package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/route-optimizer/internal/config"
	"github.com/route-optimizer/internal/infrastructure/nominatim"
	"github.com/route-optimizer/internal/infrastructure/osrm"
	"github.com/route-optimizer/internal/infrastructure/photon"
	"github.com/route-optimizer/internal/metrics"
	"github.com/route-optimizer/internal/pkg/logger"
	"github.com/route-optimizer/internal/pkg/ratelimit"
	"github.com/route-optimizer/internal/repository/cache"
	"github.com/route-optimizer/internal/repository/geocache"
	"github.com/route-optimizer/internal/repository/postgres"
	redisRepo "github.com/route-optimizer/internal/repository/redis"
	"github.com/route-optimizer/internal/usecase"
	"github.com/route-optimizer/internal/worker"
	"github.com/route-optimizer/internal/worker/route"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Route Optimize Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.String("cache_backend", cfg.Cache.Backend))

	metrics.RegisterDefault()

	// 3. Connect to Redis (стримы событий живут в Redis всегда,
	// независимо от выбранного бэкенда кэша)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Connect to PostgreSQL only when the cache backend needs it
	var db *postgres.DB
	if cfg.Cache.Backend == geocache.BackendPostgres {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
	}

	// 5. Initialize geocode cache and stream repository
	initCtx, cancelInit := context.WithTimeout(context.Background(), 5*time.Second)
	geocodeCache, err := geocache.New(initCtx, &cfg.Cache, redisClient.Client(), db, log)
	cancelInit()
	if err != nil {
		log.Fatal("Failed to initialize geocode cache", zap.Error(err))
	}

	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize use cases
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

	resolverUC := usecase.NewResolverUseCase(geocodeCache, chain, cfg.Resolver.Concurrency, log)
	matrixUC := usecase.NewMatrixUseCase(osrmClient, cfg.OSRM.PairwiseConcurrency, log)
	routeUC := usecase.NewRouteUseCase(resolverUC, matrixUC, cfg.Solver.ExactThreshold, log)

	// 7. Initialize workers
	optimizeWorker := route.NewOptimizeWorker(
		streamRepo,
		routeUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewManager(log)
	workerManager.Register(optimizeWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
