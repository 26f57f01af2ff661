// Package geocache содержит бэкенды персистентного кэша геокодинга:
// file (по умолчанию), memory, redis и postgres. Все бэкенды разделяют
// контракт repository.GeocodeCache: ключ - нормализованное имя места,
// значение - координата, записи никогда не устаревают.
package geocache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/route-optimizer/internal/config"
	"github.com/route-optimizer/internal/domain/repository"
	"github.com/route-optimizer/internal/repository/postgres"
	"go.uber.org/zap"
)

// Backend names, значения CACHE_BACKEND
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// New выбирает бэкенд кэша по конфигурации. Подключения redis/postgres
// передаются снаружи и нужны только соответствующему бэкенду.
func New(
	ctx context.Context,
	cfg *config.CacheConfig,
	redisClient *redis.Client,
	db *postgres.DB,
	logger *zap.Logger,
) (repository.GeocodeCache, error) {
	switch cfg.Backend {
	case BackendFile:
		return NewFileCache(cfg.FilePath, logger), nil
	case BackendMemory:
		return NewMemoryCache(), nil
	case BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("geocache backend %q requires a redis connection", cfg.Backend)
		}
		return NewRedisCache(redisClient, logger), nil
	case BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("geocache backend %q requires a postgres connection", cfg.Backend)
		}
		return NewPostgresCache(ctx, db, logger)
	default:
		return nil, fmt.Errorf("unknown geocache backend %q", cfg.Backend)
	}
}
