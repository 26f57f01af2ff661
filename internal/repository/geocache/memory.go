package geocache

import (
	"context"
	"sync"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
)

// memoryCache - эфемерный кэш геокодинга для тестов и запусков
// без персистентности
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Coordinate
}

// NewMemoryCache создаёт пустой кэш в памяти
func NewMemoryCache() repository.GeocodeCache {
	return &memoryCache{entries: make(map[string]domain.Coordinate)}
}

func (c *memoryCache) Lookup(_ context.Context, key string) (domain.Coordinate, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	coord, ok := c.entries[key]
	return coord, ok, nil
}

func (c *memoryCache) LookupBatch(_ context.Context, keys []string) (map[string]domain.Coordinate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[string]domain.Coordinate, len(keys))
	for _, key := range keys {
		if coord, ok := c.entries[key]; ok {
			found[key] = coord
		}
	}
	return found, nil
}

func (c *memoryCache) Store(_ context.Context, key string, coord domain.Coordinate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = coord
	return nil
}

func (c *memoryCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}
