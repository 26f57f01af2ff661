package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/route-optimizer/internal/domain"
	apperrors "github.com/route-optimizer/internal/pkg/errors"
	"github.com/route-optimizer/internal/usecase"
	"github.com/route-optimizer/internal/usecase/dto"
)

// goaPlaces - три полностью закэшированных места и таблица расстояний
// к ним: лучший тур из Panaji стоит 6 км (1 + 2 + 3).
var goaPlaces = struct {
	locations []string
	keys      []string
	cached    map[string]domain.Coordinate
	coords    []domain.Coordinate
}{
	locations: []string{"Panaji", "Margao", "Ponda"},
	keys:      []string{"panaji", "margao", "ponda"},
	cached: map[string]domain.Coordinate{
		"panaji": {Lat: 15.50, Lon: 73.83},
		"margao": {Lat: 15.27, Lon: 73.95},
		"ponda":  {Lat: 15.40, Lon: 74.01},
	},
	coords: []domain.Coordinate{
		{Lat: 15.50, Lon: 73.83},
		{Lat: 15.27, Lon: 73.95},
		{Lat: 15.40, Lon: 74.01},
	},
}

func goaTable() [][]*float64 {
	return [][]*float64{
		{meters(0), meters(1000), meters(6000)},
		{meters(4000), meters(0), meters(2000)},
		{meters(3000), meters(5000), meters(0)},
	}
}

func newRouteUseCase(cache *MockGeocodeCache, provider *MockGeocodingProvider, routing *MockRoutingProvider, threshold int) *usecase.RouteUseCase {
	logger := zap.NewNop()
	resolver := usecase.NewResolverUseCase(cache, []usecase.ChainEntry{{Provider: provider}}, 2, logger)
	matrix := usecase.NewMatrixUseCase(routing, 2, logger)
	return usecase.NewRouteUseCase(resolver, matrix, threshold, logger)
}

func TestRouteUseCase_OptimizeRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("optimizes fully cached places end to end", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		cache.On("LookupBatch", ctx, goaPlaces.keys).Return(goaPlaces.cached, nil)
		routing.On("Table", ctx, goaPlaces.coords).Return(goaTable(), nil)

		uc := newRouteUseCase(cache, provider, routing, 10)

		resp, err := uc.OptimizeRoute(ctx, dto.OptimizeRouteRequest{Locations: goaPlaces.locations})

		assert.NoError(t, err)
		assert.Equal(t, []string{"Panaji", "Margao", "Ponda", "Panaji"}, resp.Order)
		assert.Equal(t, 6.0, resp.TotalDistanceKm)
		assert.Equal(t, "exact_brute_force", resp.Algorithm)
		assert.False(t, resp.HasUnreachableLegs)
		assert.Empty(t, resp.Warnings)
		assert.Equal(t, [2]float64{15.50, 73.83}, resp.Coordinates[0])
		assert.Len(t, resp.Matrix, 3)
		assert.InDelta(t, 1.0, *resp.Matrix[0][1], 1e-9)
		provider.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unresolvable places become warnings", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		cache.On("LookupBatch", ctx, []string{"panaji", "atlantis", "margao", "ponda"}).
			Return(goaPlaces.cached, nil)
		provider.On("Search", ctx, "atlantis", 1).Return([]domain.GeocodeCandidate{}, nil)
		routing.On("Table", ctx, goaPlaces.coords).Return(goaTable(), nil)

		uc := newRouteUseCase(cache, provider, routing, 10)

		resp, err := uc.OptimizeRoute(ctx, dto.OptimizeRouteRequest{
			Locations: []string{"Panaji", "Atlantis", "Margao", "Ponda"},
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"Panaji", "Margao", "Ponda", "Panaji"}, resp.Order)
		assert.Len(t, resp.Warnings, 1)
		assert.Equal(t, "Atlantis", resp.Warnings[0].Place)
		assert.Equal(t, domain.FailureNotFound, resp.Warnings[0].Kind)
	})

	t.Run("fails when fewer than two places resolve", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		cache.On("LookupBatch", ctx, []string{"atlantis", "el dorado"}).
			Return(map[string]domain.Coordinate{}, nil)
		provider.On("Search", ctx, "atlantis", 1).Return([]domain.GeocodeCandidate{}, nil)
		provider.On("Search", ctx, "el dorado", 1).Return([]domain.GeocodeCandidate{}, nil)

		uc := newRouteUseCase(cache, provider, routing, 10)

		resp, err := uc.OptimizeRoute(ctx, dto.OptimizeRouteRequest{
			Locations: []string{"Atlantis", "El Dorado"},
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
		var appErr *apperrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SOLVER_INFEASIBLE", appErr.Code)
		routing.AssertNotCalled(t, "Table", mock.Anything, mock.Anything)
	})

	t.Run("switches to nearest neighbor above the exact threshold", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		cache.On("LookupBatch", ctx, goaPlaces.keys).Return(goaPlaces.cached, nil)
		routing.On("Table", ctx, goaPlaces.coords).Return(goaTable(), nil)

		uc := newRouteUseCase(cache, provider, routing, 2)

		resp, err := uc.OptimizeRoute(ctx, dto.OptimizeRouteRequest{Locations: goaPlaces.locations})

		assert.NoError(t, err)
		assert.Equal(t, "nearest_neighbor", resp.Algorithm)
		assert.Equal(t, 6.0, resp.TotalDistanceKm)
	})

	t.Run("unreachable legs are surfaced with place names", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		// маршрута в Ponda нет вообще: ни bulk, ни парная добивка
		cache.On("LookupBatch", ctx, goaPlaces.keys).Return(goaPlaces.cached, nil)
		routing.On("Table", ctx, goaPlaces.coords).Return([][]*float64{
			{meters(0), meters(1000), nil},
			{meters(4000), meters(0), nil},
			{meters(3000), meters(5000), meters(0)},
		}, nil)
		routing.On("Route", ctx, goaPlaces.coords[0], goaPlaces.coords[2], false).
			Return(nil, assert.AnError)
		routing.On("Route", ctx, goaPlaces.coords[1], goaPlaces.coords[2], false).
			Return(nil, assert.AnError)

		uc := newRouteUseCase(cache, provider, routing, 10)

		resp, err := uc.OptimizeRoute(ctx, dto.OptimizeRouteRequest{Locations: goaPlaces.locations})

		assert.NoError(t, err)
		assert.True(t, resp.HasUnreachableLegs)
		assert.Len(t, resp.UnreachableLegs, 1)
		assert.Equal(t, "Margao", resp.UnreachableLegs[0].From)
		assert.Equal(t, "Ponda", resp.UnreachableLegs[0].To)
		// недостижимое ребро не суммируется: 1.0 + 3.0
		assert.Equal(t, 4.0, resp.TotalDistanceKm)
		assert.Nil(t, resp.Matrix[0][2])
	})
}

func TestRouteUseCase_NearestNeighborRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit start index drives the tour", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		cache.On("LookupBatch", ctx, goaPlaces.keys).Return(goaPlaces.cached, nil)
		routing.On("Table", ctx, goaPlaces.coords).Return(goaTable(), nil)

		uc := newRouteUseCase(cache, provider, routing, 10)

		start := 1
		resp, err := uc.NearestNeighborRoute(ctx, dto.NearestNeighborRequest{
			Locations:  goaPlaces.locations,
			StartIndex: &start,
		})

		assert.NoError(t, err)
		assert.Equal(t, "nearest_neighbor", resp.Algorithm)
		assert.Equal(t, []string{"Margao", "Ponda", "Panaji", "Margao"}, resp.Order)
		assert.Equal(t, 6.0, resp.TotalDistanceKm)
	})

	t.Run("absent start index picks the best start", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		cache.On("LookupBatch", ctx, goaPlaces.keys).Return(goaPlaces.cached, nil)
		// жадный тур из Panaji стоит 17.5 км, из Margao - 10.3 км
		routing.On("Table", ctx, goaPlaces.coords).Return([][]*float64{
			{meters(0), meters(1000), meters(9000)},
			{meters(800), meters(0), meters(9500)},
			{meters(7000), meters(500), meters(0)},
		}, nil)

		uc := newRouteUseCase(cache, provider, routing, 10)

		resp, err := uc.NearestNeighborRoute(ctx, dto.NearestNeighborRequest{
			Locations: goaPlaces.locations,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Margao", resp.Order[0])
		assert.Equal(t, 10.3, resp.TotalDistanceKm)
	})

	t.Run("start index out of resolved range is rejected before routing", func(t *testing.T) {
		cache := &MockGeocodeCache{}
		provider := &MockGeocodingProvider{ProviderName: "photon"}
		routing := &MockRoutingProvider{}

		cache.On("LookupBatch", ctx, goaPlaces.keys).Return(goaPlaces.cached, nil)

		uc := newRouteUseCase(cache, provider, routing, 10)

		start := 3
		resp, err := uc.NearestNeighborRoute(ctx, dto.NearestNeighborRequest{
			Locations:  goaPlaces.locations,
			StartIndex: &start,
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
		var appErr *apperrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_REQUEST", appErr.Code)
		routing.AssertNotCalled(t, "Table", mock.Anything, mock.Anything)
	})
}
