package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/route-optimizer/internal/domain"
)

// MockGeocodeCache is a mock of GeocodeCache
type MockGeocodeCache struct {
	mock.Mock
}

func (m *MockGeocodeCache) Lookup(ctx context.Context, key string) (domain.Coordinate, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Coordinate), args.Bool(1), args.Error(2)
}

func (m *MockGeocodeCache) LookupBatch(ctx context.Context, keys []string) (map[string]domain.Coordinate, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Coordinate), args.Error(1)
}

func (m *MockGeocodeCache) Store(ctx context.Context, key string, coord domain.Coordinate) error {
	args := m.Called(ctx, key, coord)
	return args.Error(0)
}

func (m *MockGeocodeCache) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockGeocodingProvider is a mock of GeocodingProvider.
// ProviderName задаёт имя без ожиданий на каждый вызов Name().
type MockGeocodingProvider struct {
	mock.Mock
	ProviderName string
}

func (m *MockGeocodingProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockGeocodingProvider) Search(ctx context.Context, query string, limit int) ([]domain.GeocodeCandidate, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeocodeCandidate), args.Error(1)
}

// MockRoutingProvider is a mock of RoutingProvider
type MockRoutingProvider struct {
	mock.Mock
}

func (m *MockRoutingProvider) Table(ctx context.Context, coords []domain.Coordinate) ([][]*float64, error) {
	args := m.Called(ctx, coords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]*float64), args.Error(1)
}

func (m *MockRoutingProvider) Route(ctx context.Context, origin, dest domain.Coordinate, includeGeometry bool) (*domain.RouteLeg, error) {
	args := m.Called(ctx, origin, dest, includeGeometry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteLeg), args.Error(1)
}

// meters строит указатель на значение для ячеек table-ответа
func meters(v float64) *float64 {
	return &v
}
