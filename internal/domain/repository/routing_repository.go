package repository

import (
	"context"

	"github.com/route-optimizer/internal/domain"
)

// RoutingProvider определяет внешний провайдер дорожной маршрутизации
type RoutingProvider interface {
	// Table возвращает матрицу дорожных расстояний в метрах между всеми
	// парами точек за один вызов. nil-ячейка означает, что провайдер
	// не нашёл маршрут для этой пары.
	Table(ctx context.Context, coords []domain.Coordinate) ([][]*float64, error)

	// Route строит участок маршрута между двумя точками.
	// Геометрия запрашивается только при includeGeometry.
	Route(ctx context.Context, origin, dest domain.Coordinate, includeGeometry bool) (*domain.RouteLeg, error)
}
