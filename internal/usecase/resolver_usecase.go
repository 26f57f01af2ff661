package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"github.com/route-optimizer/internal/metrics"
	"github.com/route-optimizer/internal/pkg/ratelimit"
)

// ChainEntry - провайдер геокодинга с его дисциплиной вежливости.
// Gate выдерживает минимальный интервал перед каждым обращением,
// Cooldown - пауза перед единственным повтором после rate limit.
// Нулевые значения отключают соответствующий механизм.
type ChainEntry struct {
	Provider repository.GeocodingProvider
	Gate     *ratelimit.Gate
	Cooldown time.Duration
}

// ResolverUseCase - use case разрешения имён мест в координаты:
// нормализация, персистентный кэш, упорядоченная цепочка провайдеров
type ResolverUseCase struct {
	cache       repository.GeocodeCache
	chain       []ChainEntry
	concurrency int
	logger      *zap.Logger
}

// NewResolverUseCase - создание нового ResolverUseCase.
// Порядок chain определяет порядок опроса провайдеров.
func NewResolverUseCase(
	cache repository.GeocodeCache,
	chain []ChainEntry,
	concurrency int,
	logger *zap.Logger,
) *ResolverUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ResolverUseCase{
		cache:       cache,
		chain:       chain,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Resolve разрешает одно имя места в координату. Неразрешимость - это
// данные (ResolutionFailure), а не ошибка: error возвращается только
// при отмене контекста.
func (uc *ResolverUseCase) Resolve(ctx context.Context, query string) (*domain.ResolvedPlace, *domain.ResolutionFailure, error) {
	normalized := domain.NormalizePlace(query)
	if normalized == "" {
		return nil, &domain.ResolutionFailure{
			Place:  query,
			Kind:   domain.FailureNotFound,
			Detail: "empty place name",
		}, nil
	}

	coord, hit, err := uc.cache.Lookup(ctx, normalized)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		// кэш деградирует в промах, разрешение продолжается
		uc.logger.Warn("Geocode cache lookup failed",
			zap.String("place", normalized),
			zap.Error(err))
	}
	if hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return &domain.ResolvedPlace{
			Query:      query,
			Normalized: normalized,
			Coordinate: coord,
			FromCache:  true,
		}, nil, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	return uc.resolveViaProviders(ctx, query, normalized)
}

// ResolveAll разрешает пачку имён: один batch-префетч кэша, затем промахи
// конкурентно под ограниченным семафором. Порядок разрешённых мест всегда
// соответствует порядку входа; неразрешённые имена попадают в failures.
func (uc *ResolverUseCase) ResolveAll(ctx context.Context, queries []string) ([]domain.ResolvedPlace, []domain.ResolutionFailure, error) {
	type slot struct {
		resolved *domain.ResolvedPlace
		failure  *domain.ResolutionFailure
	}
	slots := make([]slot, len(queries))

	keys := make([]string, 0, len(queries))
	seen := make(map[string]struct{}, len(queries))
	for _, q := range queries {
		k := domain.NormalizePlace(q)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	cached := map[string]domain.Coordinate{}
	if len(keys) > 0 {
		var err error
		cached, err = uc.cache.LookupBatch(ctx, keys)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			uc.logger.Warn("Geocode cache batch lookup failed", zap.Error(err))
			cached = map[string]domain.Coordinate{}
		}
	}

	sem := make(chan struct{}, uc.concurrency)
	var wg sync.WaitGroup

	for i, q := range queries {
		normalized := domain.NormalizePlace(q)
		if normalized == "" {
			slots[i] = slot{failure: &domain.ResolutionFailure{
				Place:  q,
				Kind:   domain.FailureNotFound,
				Detail: "empty place name",
			}}
			continue
		}

		if coord, hit := cached[normalized]; hit {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			slots[i] = slot{resolved: &domain.ResolvedPlace{
				Query:      q,
				Normalized: normalized,
				Coordinate: coord,
				FromCache:  true,
			}}
			continue
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()

		wg.Add(1)
		go func(i int, query, normalized string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			resolved, failure, err := uc.resolveViaProviders(ctx, query, normalized)
			if err != nil {
				// отмена контекста: слот останется пустым, наружу уйдёт ctx.Err()
				return
			}
			slots[i] = slot{resolved: resolved, failure: failure}
		}(i, q, normalized)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	resolved := make([]domain.ResolvedPlace, 0, len(queries))
	var failures []domain.ResolutionFailure
	for _, s := range slots {
		switch {
		case s.resolved != nil:
			resolved = append(resolved, *s.resolved)
		case s.failure != nil:
			failures = append(failures, *s.failure)
		}
	}
	return resolved, failures, nil
}

// Suggest возвращает до limit кандидатов для подсказок: провайдеры
// опрашиваются по порядку цепочки, выигрывает первый с непустой выдачей.
// Cooldown-повторы здесь не делаются: подсказки чувствительны к задержке,
// отказ всех провайдеров - это просто пустой список.
func (uc *ResolverUseCase) Suggest(ctx context.Context, query string, limit int) ([]domain.GeocodeCandidate, error) {
	normalized := domain.NormalizePlace(query)
	if normalized == "" {
		return nil, nil
	}

	for _, entry := range uc.chain {
		candidates, err := uc.searchOnce(ctx, entry, normalized, limit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			uc.logger.Debug("Suggestion provider failed",
				zap.String("provider", entry.Provider.Name()),
				zap.Error(err))
			continue
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
	}
	return nil, nil
}

// resolveViaProviders идёт по цепочке провайдеров за координатой для
// одного нормализованного имени. Rate limit от провайдера с настроенным
// cooldown даёт ровно один повтор после паузы.
func (uc *ResolverUseCase) resolveViaProviders(ctx context.Context, query, normalized string) (*domain.ResolvedPlace, *domain.ResolutionFailure, error) {
	sawEmpty := false
	sawRateLimit := false
	var lastErr error

	for _, entry := range uc.chain {
		candidates, err := uc.searchOnce(ctx, entry, normalized, 1)
		if err != nil && errors.Is(err, domain.ErrProviderRateLimited) && entry.Cooldown > 0 {
			uc.logger.Warn("Geocoding provider rate limited, cooling down",
				zap.String("provider", entry.Provider.Name()),
				zap.String("place", normalized),
				zap.Duration("cooldown", entry.Cooldown))
			if serr := sleepContext(ctx, entry.Cooldown); serr != nil {
				return nil, nil, serr
			}
			candidates, err = uc.searchOnce(ctx, entry, normalized, 1)
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			if errors.Is(err, domain.ErrProviderRateLimited) {
				sawRateLimit = true
			}
			lastErr = err
			uc.logger.Warn("Geocoding provider failed",
				zap.String("provider", entry.Provider.Name()),
				zap.String("place", normalized),
				zap.Error(err))
			continue
		}

		if len(candidates) == 0 {
			sawEmpty = true
			continue
		}

		best := candidates[0]
		coord := best.Coordinate()
		if serr := uc.cache.Store(ctx, normalized, coord); serr != nil {
			// неудача записи кэша не отменяет разрешение
			uc.logger.Warn("Failed to persist geocode cache entry",
				zap.String("place", normalized),
				zap.Error(serr))
		}

		return &domain.ResolvedPlace{
			Query:       query,
			Normalized:  normalized,
			Coordinate:  coord,
			DisplayName: best.DisplayName,
			Provider:    entry.Provider.Name(),
		}, nil, nil
	}

	failure := &domain.ResolutionFailure{Place: query}
	switch {
	case sawRateLimit:
		failure.Kind = domain.FailureRateLimited
		failure.Detail = "provider rate limit persisted after cooldown"
	case sawEmpty:
		failure.Kind = domain.FailureNotFound
		failure.Detail = "no provider returned candidates"
	default:
		failure.Kind = domain.FailureNetworkError
		if lastErr != nil {
			failure.Detail = lastErr.Error()
		}
	}
	return nil, failure, nil
}

// searchOnce выполняет один вызов провайдера, выдержав его gate
func (uc *ResolverUseCase) searchOnce(ctx context.Context, entry ChainEntry, query string, limit int) ([]domain.GeocodeCandidate, error) {
	if entry.Gate != nil {
		if err := entry.Gate.Wait(ctx); err != nil {
			return nil, err
		}
	}

	name := entry.Provider.Name()
	start := time.Now()
	candidates, err := entry.Provider.Search(ctx, query, limit)
	metrics.GeocodeDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, domain.ErrProviderRateLimited):
		metrics.GeocodeRequests.WithLabelValues(name, "rate_limited").Inc()
	case err != nil:
		metrics.GeocodeRequests.WithLabelValues(name, "error").Inc()
	case len(candidates) == 0:
		metrics.GeocodeRequests.WithLabelValues(name, "empty").Inc()
	default:
		metrics.GeocodeRequests.WithLabelValues(name, "ok").Inc()
	}

	return candidates, err
}

// sleepContext ждёт d или отмену контекста
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
