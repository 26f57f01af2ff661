package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/pkg/errors"
	"github.com/route-optimizer/internal/usecase/dto"
)

const (
	defaultSuggestionLimit = 12
	maxSuggestionLimit     = 20
)

// GeocodeUseCase - прямое геокодирование и подсказки поверх resolver'а
type GeocodeUseCase struct {
	resolver *ResolverUseCase
	logger   *zap.Logger
}

// NewGeocodeUseCase - создание нового GeocodeUseCase
func NewGeocodeUseCase(resolver *ResolverUseCase, logger *zap.Logger) *GeocodeUseCase {
	return &GeocodeUseCase{
		resolver: resolver,
		logger:   logger,
	}
}

// Search геокодирует одно место через кэш и цепочку провайдеров.
// В отличие от конвейера маршрутов, здесь неразрешимость - это ошибка
// запроса: 404 для ненайденного места, 429 для исчерпанного лимита.
func (uc *GeocodeUseCase) Search(ctx context.Context, req dto.GeocodeSearchRequest) (*dto.GeocodeSearchResponse, error) {
	resolved, failure, err := uc.resolver.Resolve(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	if failure != nil {
		uc.logger.Info("Geocode search failed",
			zap.String("query", req.Query),
			zap.String("kind", string(failure.Kind)),
			zap.String("detail", failure.Detail))
		switch failure.Kind {
		case domain.FailureRateLimited:
			return nil, errors.ErrRateLimited
		case domain.FailureNetworkError:
			return nil, errors.ErrGeocodingUnavailable.WithDetails(map[string]interface{}{
				"detail": failure.Detail,
			})
		default:
			return nil, errors.ErrLocationNotFound
		}
	}

	return &dto.GeocodeSearchResponse{
		Name:        resolved.Query,
		DisplayName: resolved.DisplayName,
		Lat:         resolved.Coordinate.Lat,
		Lon:         resolved.Coordinate.Lon,
		Provider:    resolved.Provider,
		FromCache:   resolved.FromCache,
	}, nil
}

// Autocomplete возвращает подсказки по частичному вводу. Кэш не
// используется: подсказки должны отражать живую выдачу провайдера.
// Отказ всех провайдеров - это пустой список, а не ошибка.
func (uc *GeocodeUseCase) Autocomplete(ctx context.Context, req dto.AutocompleteRequest) (*dto.AutocompleteResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	candidates, err := uc.resolver.Suggest(ctx, req.Query, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, dto.Suggestion{
			Name:        c.Name,
			DisplayName: c.DisplayName,
			Lat:         c.Lat,
			Lon:         c.Lon,
			Type:        c.Type,
		})
	}

	return &dto.AutocompleteResponse{Suggestions: suggestions}, nil
}
