package repository

import (
	"context"

	"github.com/route-optimizer/internal/domain"
)

// GeocodingProvider определяет внешний провайдер геокодинга.
// Порядок провайдеров в цепочке resolver'а - вопрос конфигурации,
// все реализации разделяют этот контракт.
type GeocodingProvider interface {
	// Name возвращает имя провайдера для логов и warnings
	Name() string

	// Search возвращает до limit кандидатов по убыванию релевантности.
	// Пустой срез без ошибки означает "место не найдено".
	Search(ctx context.Context, query string, limit int) ([]domain.GeocodeCandidate, error)
}
