package geocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"github.com/route-optimizer/internal/repository/postgres"
	"go.uber.org/zap"
)

// postgresCache - кэш геокодинга в PostgreSQL для запусков с несколькими
// инстансами, где файловый кэш не разделяется
type postgresCache struct {
	db     *postgres.DB
	logger *zap.Logger
}

// NewPostgresCache создаёт кэш поверх подключения к PostgreSQL и
// гарантирует наличие таблицы
func NewPostgresCache(ctx context.Context, db *postgres.DB, logger *zap.Logger) (repository.GeocodeCache, error) {
	c := &postgresCache{db: db, logger: logger}
	if err := c.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *postgresCache) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS geocode_cache (
			query      TEXT PRIMARY KEY,
			lat        DOUBLE PRECISION NOT NULL,
			lon        DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure geocode_cache table: %w", err)
	}
	return nil
}

type cacheRow struct {
	Query string  `db:"query"`
	Lat   float64 `db:"lat"`
	Lon   float64 `db:"lon"`
}

func (c *postgresCache) Lookup(ctx context.Context, key string) (domain.Coordinate, bool, error) {
	var row cacheRow
	err := c.db.GetContext(ctx, &row,
		`SELECT query, lat, lon FROM geocode_cache WHERE query = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to lookup geocode entry", zap.String("key", key), zap.Error(err))
		return domain.Coordinate{}, false, fmt.Errorf("geocache select: %w", err)
	}
	return domain.Coordinate{Lat: row.Lat, Lon: row.Lon}, true, nil
}

func (c *postgresCache) LookupBatch(ctx context.Context, keys []string) (map[string]domain.Coordinate, error) {
	if len(keys) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	var rows []cacheRow
	err := c.db.SelectContext(ctx, &rows,
		`SELECT query, lat, lon FROM geocode_cache WHERE query = ANY($1)`, pq.Array(keys))
	if err != nil {
		c.logger.Error("Failed to batch lookup geocode entries", zap.Int("keys", len(keys)), zap.Error(err))
		return nil, fmt.Errorf("geocache batch select: %w", err)
	}

	found := make(map[string]domain.Coordinate, len(rows))
	for _, row := range rows {
		found[row.Query] = domain.Coordinate{Lat: row.Lat, Lon: row.Lon}
	}
	return found, nil
}

func (c *postgresCache) Store(ctx context.Context, key string, coord domain.Coordinate) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO geocode_cache (query, lat, lon)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (query) DO UPDATE
		 SET lat = EXCLUDED.lat, lon = EXCLUDED.lon, updated_at = now()`,
		key, coord.Lat, coord.Lon)
	if err != nil {
		c.logger.Error("Failed to store geocode entry", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("geocache upsert: %w", err)
	}
	return nil
}

func (c *postgresCache) Len(ctx context.Context) (int, error) {
	var count int
	if err := c.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM geocode_cache`); err != nil {
		return 0, fmt.Errorf("geocache count: %w", err)
	}
	return count, nil
}
