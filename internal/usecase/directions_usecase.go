package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"github.com/route-optimizer/internal/pkg/errors"
	"github.com/route-optimizer/internal/pkg/utils"
	"github.com/route-optimizer/internal/usecase/dto"
)

// DirectionsUseCase - парные операции между двумя точками:
// расстояние по прямой и дорожный участок с геометрией
type DirectionsUseCase struct {
	routing repository.RoutingProvider
	logger  *zap.Logger
}

// NewDirectionsUseCase - создание нового DirectionsUseCase
func NewDirectionsUseCase(routing repository.RoutingProvider, logger *zap.Logger) *DirectionsUseCase {
	return &DirectionsUseCase{
		routing: routing,
		logger:  logger,
	}
}

// Distance считает расстояние по прямой (haversine) между двумя точками
func (uc *DirectionsUseCase) Distance(ctx context.Context, req dto.DistanceRequest) (*dto.DistanceResponse, error) {
	if !utils.ValidateCoordinates(req.FromLat, req.FromLon) ||
		!utils.ValidateCoordinates(req.ToLat, req.ToLon) {
		return nil, errors.ErrInvalidCoordinates
	}

	km := utils.HaversineDistance(req.FromLat, req.FromLon, req.ToLat, req.ToLon)
	return &dto.DistanceResponse{DistanceKm: utils.RoundKm(km)}, nil
}

// RouteLeg строит дорожный участок между двумя точками с геометрией
// для отрисовки на карте
func (uc *DirectionsUseCase) RouteLeg(ctx context.Context, req dto.RouteLegRequest) (*dto.RouteLegResponse, error) {
	if !utils.ValidateCoordinates(req.FromLat, req.FromLon) ||
		!utils.ValidateCoordinates(req.ToLat, req.ToLon) {
		return nil, errors.ErrInvalidCoordinates
	}

	origin := domain.Coordinate{Lat: req.FromLat, Lon: req.FromLon}
	dest := domain.Coordinate{Lat: req.ToLat, Lon: req.ToLon}

	leg, err := uc.routing.Route(ctx, origin, dest, true)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		uc.logger.Error("Failed to build route leg", zap.Error(err))
		return nil, errors.ErrRoutingUnavailable
	}

	return &dto.RouteLegResponse{
		DistanceKm:  utils.RoundKm(leg.DistanceKm),
		DurationMin: utils.RoundMinutes(leg.DurationMin),
		Geometry:    leg.Geometry,
	}, nil
}
