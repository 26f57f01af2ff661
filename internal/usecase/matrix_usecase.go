package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"github.com/route-optimizer/internal/metrics"
)

// MatrixUseCase - построение матрицы дорожных расстояний: один bulk
// table-вызов, затем парные добивки только для пропусков
type MatrixUseCase struct {
	routing     repository.RoutingProvider
	concurrency int
	logger      *zap.Logger
}

// NewMatrixUseCase - создание нового MatrixUseCase.
// concurrency ограничивает пул парных добивок.
func NewMatrixUseCase(routing repository.RoutingProvider, concurrency int, logger *zap.Logger) *MatrixUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &MatrixUseCase{
		routing:     routing,
		concurrency: concurrency,
		logger:      logger,
	}
}

type matrixCell struct {
	i, j int
}

// BuildMatrix строит матрицу n x n дорожных расстояний в километрах.
// Матрица может быть несимметричной, значения не усредняются и не
// округляются. Ячейки без маршрута остаются недостижимыми - числовых
// сентинелов в матрице нет.
func (uc *MatrixUseCase) BuildMatrix(ctx context.Context, coords []domain.Coordinate) (*domain.DistanceMatrix, error) {
	n := len(coords)
	matrix := domain.NewDistanceMatrix(n)
	if n <= 1 {
		return matrix, nil
	}

	var missing []matrixCell

	meters, err := uc.routing.Table(ctx, coords)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.TableCalls.WithLabelValues("error").Inc()
		uc.logger.Warn("Bulk distance table failed, falling back to pairwise routing",
			zap.Int("places", n),
			zap.Error(err))
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					missing = append(missing, matrixCell{i, j})
				}
			}
		}
	} else {
		metrics.TableCalls.WithLabelValues("ok").Inc()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if cell := meters[i][j]; cell != nil {
					matrix.Set(i, j, domain.KnownDistance(*cell/1000.0))
				} else {
					missing = append(missing, matrixCell{i, j})
				}
			}
		}
	}

	if len(missing) == 0 {
		return matrix, nil
	}

	uc.logger.Debug("Filling distance matrix gaps with pairwise routing",
		zap.Int("gaps", len(missing)),
		zap.Int("places", n))

	// каждая горутина пишет в свою ячейку, пересечений нет;
	// wg.Wait даёт happens-before для чтения матрицы после заполнения
	sem := make(chan struct{}, uc.concurrency)
	var wg sync.WaitGroup

	for _, cell := range missing {
		wg.Add(1)
		go func(cell matrixCell) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			leg, rerr := uc.routing.Route(ctx, coords[cell.i], coords[cell.j], false)
			if rerr != nil {
				if ctx.Err() != nil {
					return
				}
				// маршрута нет: ячейка остаётся недостижимой
				metrics.PairwiseCalls.WithLabelValues("unreachable").Inc()
				uc.logger.Debug("Pairwise route not found",
					zap.Int("from", cell.i),
					zap.Int("to", cell.j),
					zap.Error(rerr))
				return
			}

			metrics.PairwiseCalls.WithLabelValues("ok").Inc()
			matrix.Set(cell.i, cell.j, domain.KnownDistance(leg.DistanceKm))
		}(cell)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matrix, nil
}
