package geocache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"go.uber.org/zap"
)

// keyPrefix отделяет записи геокэша от остальных ключей Redis
const keyPrefix = "geocode:"

// redisCache - кэш геокодинга поверх Redis. Значения хранятся как
// JSON-массивы [lat, lon] без TTL: геокодинг считается статичным.
type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache создаёт кэш геокодинга поверх существующего клиента Redis
func NewRedisCache(client *redis.Client, logger *zap.Logger) repository.GeocodeCache {
	return &redisCache{client: client, logger: logger}
}

func (c *redisCache) Lookup(ctx context.Context, key string) (domain.Coordinate, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get geocode entry", zap.String("key", key), zap.Error(err))
		return domain.Coordinate{}, false, fmt.Errorf("geocache get: %w", err)
	}

	coord, ok := decodeCoordinate(val)
	if !ok {
		c.logger.Warn("Corrupt geocode entry ignored", zap.String("key", key))
		return domain.Coordinate{}, false, nil
	}
	return coord, true, nil
}

func (c *redisCache) LookupBatch(ctx context.Context, keys []string) (map[string]domain.Coordinate, error) {
	if len(keys) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = keyPrefix + key
	}

	values, err := c.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		c.logger.Error("Failed to mget geocode entries", zap.Int("keys", len(keys)), zap.Error(err))
		return nil, fmt.Errorf("geocache mget: %w", err)
	}

	found := make(map[string]domain.Coordinate, len(keys))
	for i, raw := range values {
		s, ok := raw.(string)
		if !ok {
			continue // nil = промах
		}
		if coord, ok := decodeCoordinate([]byte(s)); ok {
			found[keys[i]] = coord
		}
	}
	return found, nil
}

func (c *redisCache) Store(ctx context.Context, key string, coord domain.Coordinate) error {
	data, err := json.Marshal([2]float64{coord.Lat, coord.Lon})
	if err != nil {
		return fmt.Errorf("geocache marshal: %w", err)
	}

	// TTL = 0: записи геокэша не устаревают
	if err := c.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		c.logger.Error("Failed to set geocode entry", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("geocache set: %w", err)
	}
	return nil
}

func (c *redisCache) Len(ctx context.Context) (int, error) {
	var cursor uint64
	var total int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 500).Result()
		if err != nil {
			return 0, fmt.Errorf("geocache scan: %w", err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}

// decodeCoordinate принимает [lat, lon, ...] и объектную форму записи
func decodeCoordinate(data []byte) (domain.Coordinate, bool) {
	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.Coordinate{}, false
	}
	return entry.coord, entry.ok
}
