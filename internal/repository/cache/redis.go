package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/route-optimizer/internal/config"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// Redis - обёртка над клиентом Redis. Один клиент обслуживает
// и геокэш, и стримы асинхронной оптимизации.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis создает клиента и проверяет соединение
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,

		// Геокэш и публикации в стримы - короткие операции;
		// блокирующие чтения стримов воркер не использует
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
	)

	return &Redis{
		client: client,
		logger: logger,
	}, nil
}

// Close закрывает соединение
func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

// Health проверяет доступность Redis
func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Client возвращает низкоуровневый клиент для репозиториев
func (r *Redis) Client() *redis.Client {
	return r.client
}
