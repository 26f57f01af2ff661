package repository

import (
	"context"

	"github.com/route-optimizer/internal/domain"
)

// GeocodeCache определяет персистентный кэш геокодинга:
// нормализованное имя места -> координата. Записи не устаревают.
type GeocodeCache interface {
	// Lookup возвращает координату по ключу и признак попадания
	Lookup(ctx context.Context, key string) (domain.Coordinate, bool, error)

	// LookupBatch возвращает найденные координаты для набора ключей
	LookupBatch(ctx context.Context, keys []string) (map[string]domain.Coordinate, error)

	// Store сохраняет координату (write-through, last-write-wins)
	Store(ctx context.Context, key string, coord domain.Coordinate) error

	// Len возвращает количество записей в кэше
	Len(ctx context.Context) (int, error)
}
