package geocache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"go.uber.org/zap"
)

// fileCache - файловый кэш геокодинга: JSON-объект
// "нормализованное имя" -> [lat, lon]. Файл целиком читается в память
// при создании, каждая запись немедленно сбрасывается на диск
// (write-through). Записи не устаревают.
type fileCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Coordinate
	path    string
	logger  *zap.Logger
}

// fileEntry принимает обе формы записи: [lat, lon, ...] и
// {"lat": ..., "lon": ..., ...}. Лишние элементы и неизвестные поля
// игнорируются, файл можно досеивать руками.
type fileEntry struct {
	coord domain.Coordinate
	ok    bool
}

func (e *fileEntry) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) >= 2 {
			e.coord = domain.Coordinate{Lat: arr[0], Lon: arr[1]}
			e.ok = true
		}
		return nil
	}

	var obj struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Lat != nil && obj.Lon != nil {
		e.coord = domain.Coordinate{Lat: *obj.Lat, Lon: *obj.Lon}
		e.ok = true
	}
	return nil
}

// NewFileCache загружает кэш из файла. Отсутствующий или битый файл
// не ошибка: кэш стартует пустым с предупреждением в логе.
func NewFileCache(path string, logger *zap.Logger) repository.GeocodeCache {
	c := &fileCache{
		entries: make(map[string]domain.Coordinate),
		path:    path,
		logger:  logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read geocode cache file, starting empty",
				zap.String("path", path),
				zap.Error(err))
		}
		return c
	}

	var raw map[string]fileEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("Geocode cache file is corrupt, starting empty",
			zap.String("path", path),
			zap.Error(err))
		return c
	}

	skipped := 0
	for key, entry := range raw {
		if !entry.ok {
			skipped++
			continue
		}
		c.entries[domain.NormalizePlace(key)] = entry.coord
	}

	logger.Info("Geocode cache loaded",
		zap.String("path", path),
		zap.Int("entries", len(c.entries)),
		zap.Int("skipped", skipped))
	return c
}

// Lookup возвращает координату по ключу без обращения к диску
func (c *fileCache) Lookup(_ context.Context, key string) (domain.Coordinate, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	coord, ok := c.entries[key]
	return coord, ok, nil
}

// LookupBatch возвращает найденные координаты для набора ключей
func (c *fileCache) LookupBatch(_ context.Context, keys []string) (map[string]domain.Coordinate, error) {
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

// Store записывает координату в память и сбрасывает файл целиком.
// Последняя успешная запись побеждает.
func (c *fileCache) Store(_ context.Context, key string, coord domain.Coordinate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = coord
	if err := c.persistLocked(); err != nil {
		// откат записи не нужен: память остаётся консистентной,
		// диск догонит при следующем Store
		c.logger.Warn("Failed to persist geocode cache",
			zap.String("path", c.path),
			zap.Error(err))
		return fmt.Errorf("persist geocode cache: %w", err)
	}
	return nil
}

// Len возвращает количество записей
func (c *fileCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

// persistLocked пишет снапшот во временный файл и атомарно подменяет
// основной, чтобы сбой процесса не оставил полузаписанный JSON.
// Вызывается под c.mu.
func (c *fileCache) persistLocked() error {
	snapshot := make(map[string][2]float64, len(c.entries))
	for key, coord := range c.entries {
		snapshot[key] = [2]float64{coord.Lat, coord.Lon}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

