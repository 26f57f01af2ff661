package geocache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/route-optimizer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "geocode_cache.json")
}

func TestFileCache_RoundTrip(t *testing.T) {
	path := cachePath(t)
	cache := NewFileCache(path, zap.NewNop())
	ctx := context.Background()

	key := domain.NormalizePlace("  Goa ")
	require.NoError(t, cache.Store(ctx, key, domain.Coordinate{Lat: 15.30, Lon: 74.09}))

	coord, ok, err := cache.Lookup(ctx, domain.NormalizePlace("Goa"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 15.30, coord.Lat)
	assert.Equal(t, 74.09, coord.Lon)

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFileCache_SurvivesReopen(t *testing.T) {
	path := cachePath(t)
	ctx := context.Background()

	first := NewFileCache(path, zap.NewNop())
	require.NoError(t, first.Store(ctx, "mumbai", domain.Coordinate{Lat: 19.0760, Lon: 72.8777}))
	require.NoError(t, first.Store(ctx, "goa", domain.Coordinate{Lat: 15.2993, Lon: 74.1240}))

	// Новый инстанс читает тот же файл
	second := NewFileCache(path, zap.NewNop())
	coord, ok, err := second.Lookup(ctx, "mumbai")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 19.0760, coord.Lat)

	n, err := second.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFileCache_MissingFileStartsEmpty(t *testing.T) {
	cache := NewFileCache(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())

	_, ok, err := cache.Lookup(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCache_CorruptFileStartsEmpty(t *testing.T) {
	path := cachePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cache := NewFileCache(path, zap.NewNop())

	n, err := cache.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	// Кэш остаётся рабочим и перезаписывает битый файл
	require.NoError(t, cache.Store(context.Background(), "pune", domain.Coordinate{Lat: 18.52, Lon: 73.86}))

	reopened := NewFileCache(path, zap.NewNop())
	_, ok, err := reopened.Lookup(context.Background(), "pune")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileCache_ForwardCompatibleEntries(t *testing.T) {
	// Руками досеянный файл: массив с лишним элементом, объектная форма
	// с неизвестным полем, запись без координат
	raw := `{
		"mumbai": [19.0760, 72.8777, "extra"],
		"goa": {"lat": 15.2993, "lon": 74.1240, "source": "manual"},
		"broken": {"note": "no coordinates"},
		"  Panaji  ": [15.4909, 73.8278]
	}`
	path := cachePath(t)
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cache := NewFileCache(path, zap.NewNop())
	ctx := context.Background()

	coord, ok, err := cache.Lookup(ctx, "mumbai")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 19.0760, coord.Lat)

	coord, ok, err = cache.Lookup(ctx, "goa")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 74.1240, coord.Lon)

	// Ключи нормализуются при загрузке
	_, ok, err = cache.Lookup(ctx, "panaji")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = cache.Lookup(ctx, "broken")
	require.NoError(t, err)
	assert.False(t, ok, "entry without coordinates must be skipped")
}

func TestFileCache_PersistedShapeIsFlatMapping(t *testing.T) {
	path := cachePath(t)
	cache := NewFileCache(path, zap.NewNop())
	require.NoError(t, cache.Store(context.Background(), "goa", domain.Coordinate{Lat: 15.30, Lon: 74.09}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var persisted map[string][2]float64
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, [2]float64{15.30, 74.09}, persisted["goa"])
}

func TestFileCache_LookupBatch(t *testing.T) {
	cache := NewFileCache(cachePath(t), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, "mumbai", domain.Coordinate{Lat: 19.07, Lon: 72.87}))
	require.NoError(t, cache.Store(ctx, "goa", domain.Coordinate{Lat: 15.30, Lon: 74.09}))

	found, err := cache.LookupBatch(ctx, []string{"mumbai", "unknown", "goa"})
	require.NoError(t, err)

	assert.Len(t, found, 2)
	assert.Contains(t, found, "mumbai")
	assert.Contains(t, found, "goa")
	assert.NotContains(t, found, "unknown")
}

func TestFileCache_ConcurrentAccess(t *testing.T) {
	cache := NewFileCache(cachePath(t), zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			key := domain.NormalizePlace("Place " + string(rune('A'+i)))
			_ = cache.Store(ctx, key, domain.Coordinate{Lat: float64(i), Lon: float64(-i)})
		}(i)
		go func(i int) {
			defer wg.Done()
			key := domain.NormalizePlace("Place " + string(rune('A'+i)))
			// Либо промах, либо целиковая запись - но никогда не паника
			if coord, ok, err := cache.Lookup(ctx, key); err == nil && ok {
				assert.Equal(t, float64(i), coord.Lat)
			}
		}(i)
	}
	wg.Wait()

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}
