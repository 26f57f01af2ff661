package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/metrics"
	"github.com/route-optimizer/internal/pkg/errors"
	"github.com/route-optimizer/internal/pkg/tsp"
	"github.com/route-optimizer/internal/pkg/utils"
	"github.com/route-optimizer/internal/usecase/dto"
)

// RouteUseCase - конвейер оптимизации маршрута: разрешение имён мест,
// матрица дорожных расстояний, выбор порядка обхода
type RouteUseCase struct {
	resolver       *ResolverUseCase
	matrix         *MatrixUseCase
	exactThreshold int
	logger         *zap.Logger
}

// NewRouteUseCase - создание нового RouteUseCase.
// exactThreshold задаёт границу полного перебора: задачи большего
// размера решаются эвристикой ближайшего соседа.
func NewRouteUseCase(
	resolver *ResolverUseCase,
	matrix *MatrixUseCase,
	exactThreshold int,
	logger *zap.Logger,
) *RouteUseCase {
	if exactThreshold < 2 {
		exactThreshold = 2
	}
	return &RouteUseCase{
		resolver:       resolver,
		matrix:         matrix,
		exactThreshold: exactThreshold,
		logger:         logger,
	}
}

// OptimizeRoute строит оптимальный порядок обхода мест: точное решение
// для малых задач, ближайший сосед для остальных. Неразрешённые имена
// попадают в warnings и выпадают из маршрута; если разрешимых мест
// меньше двух, запрос целиком отклоняется.
func (uc *RouteUseCase) OptimizeRoute(ctx context.Context, req dto.OptimizeRouteRequest) (*dto.OptimizeRouteResponse, error) {
	resolved, failures, coords, err := uc.resolvePlaces(ctx, req.Locations)
	if err != nil {
		return nil, err
	}

	matrix, err := uc.matrix.BuildMatrix(ctx, coords)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	solution, err := tsp.Solve(matrix, uc.exactThreshold)
	if err != nil {
		return nil, err
	}
	uc.observeSolution(solution, time.Since(start), len(resolved), len(failures))

	return buildRouteResponse(resolved, failures, matrix, solution), nil
}

// NearestNeighborRoute строит эвристический маршрут. StartIndex
// опционален: без него эвристика запускается от каждой стартовой точки
// и возвращается лучший тур. Индекс проверяется против числа разрешённых
// мест - warnings могли сдвинуть индексацию.
func (uc *RouteUseCase) NearestNeighborRoute(ctx context.Context, req dto.NearestNeighborRequest) (*dto.OptimizeRouteResponse, error) {
	resolved, failures, coords, err := uc.resolvePlaces(ctx, req.Locations)
	if err != nil {
		return nil, err
	}

	if req.StartIndex != nil && (*req.StartIndex < 0 || *req.StartIndex >= len(resolved)) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"start_index":     *req.StartIndex,
			"resolved_places": len(resolved),
		})
	}

	matrix, err := uc.matrix.BuildMatrix(ctx, coords)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var solution tsp.Solution
	if req.StartIndex != nil {
		solution, err = tsp.NearestNeighbor(matrix, *req.StartIndex)
	} else {
		solution, err = tsp.NearestNeighborBestStart(matrix)
	}
	if err != nil {
		return nil, err
	}
	uc.observeSolution(solution, time.Since(start), len(resolved), len(failures))

	return buildRouteResponse(resolved, failures, matrix, solution), nil
}

// resolvePlaces выполняет общую часть конвейера: разрешение имён,
// проверку разрешимости и сборку координат в порядке разрешения.
func (uc *RouteUseCase) resolvePlaces(ctx context.Context, locations []string) ([]domain.ResolvedPlace, []domain.ResolutionFailure, []domain.Coordinate, error) {
	resolved, failures, err := uc.resolver.ResolveAll(ctx, locations)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(resolved) < 2 {
		uc.logger.Warn("Not enough resolvable places for a route",
			zap.Int("requested", len(locations)),
			zap.Int("resolved", len(resolved)))
		return nil, nil, nil, errors.ErrSolverInfeasible.WithDetails(map[string]interface{}{
			"requested": len(locations),
			"resolved":  len(resolved),
			"warnings":  failures,
		})
	}

	coords := make([]domain.Coordinate, len(resolved))
	for i, place := range resolved {
		coords[i] = place.Coordinate
	}
	return resolved, failures, coords, nil
}

func (uc *RouteUseCase) observeSolution(solution tsp.Solution, elapsed time.Duration, resolved, failed int) {
	algorithm := string(solution.Algorithm)
	metrics.SolverRuns.WithLabelValues(algorithm).Inc()
	metrics.SolverDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())

	uc.logger.Info("Route solved",
		zap.String("algorithm", algorithm),
		zap.Int("places", resolved),
		zap.Int("unresolved", failed),
		zap.Float64("total_km", solution.TotalKm),
		zap.Int("unreachable_legs", len(solution.UnreachableLegs)),
		zap.Duration("elapsed", elapsed))
}

// buildRouteResponse собирает ответ конвейера: замкнутый порядок обхода
// с исходными именами, матрица в сетевом виде, координаты [lat, lon].
func buildRouteResponse(
	resolved []domain.ResolvedPlace,
	failures []domain.ResolutionFailure,
	matrix *domain.DistanceMatrix,
	solution tsp.Solution,
) *dto.OptimizeRouteResponse {
	order := make([]string, len(solution.Tour))
	for i, idx := range solution.Tour {
		order[i] = resolved[idx].Query
	}

	coordinates := make([][2]float64, len(resolved))
	for i, place := range resolved {
		coordinates[i] = [2]float64{place.Coordinate.Lat, place.Coordinate.Lon}
	}

	resp := &dto.OptimizeRouteResponse{
		Order:              order,
		TotalDistanceKm:    utils.RoundKm(solution.TotalKm),
		Matrix:             matrix.Grid(),
		Coordinates:        coordinates,
		Warnings:           failures,
		Algorithm:          string(solution.Algorithm),
		HasUnreachableLegs: len(solution.UnreachableLegs) > 0,
	}

	if len(solution.UnreachableLegs) > 0 {
		legs := make([]dto.UnreachableLeg, len(solution.UnreachableLegs))
		for i, leg := range solution.UnreachableLegs {
			legs[i] = dto.UnreachableLeg{
				From: resolved[leg.From].Query,
				To:   resolved[leg.To].Query,
			}
		}
		resp.UnreachableLegs = legs
	}

	return resp
}
