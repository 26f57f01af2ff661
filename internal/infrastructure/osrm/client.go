package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/route-optimizer/internal/config"
	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	logger     *zap.Logger
}

// NewClient создает клиент OSRM для table- и route-запросов
func NewClient(cfg *config.OSRMConfig, logger *zap.Logger) repository.RoutingProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		profile: cfg.Profile,
		logger:  logger,
	}
}

// tableResponse - ответ OSRM Table API. Ячейка distances может быть null,
// если маршрут между парой точек не найден.
type tableResponse struct {
	Code      string       `json:"code"`
	Distances [][]*float64 `json:"distances"`
}

// routeResponse - ответ OSRM Route API
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // метры
		Duration float64 `json:"duration"` // секунды
		Geometry *struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Table возвращает матрицу дорожных расстояний в метрах одним вызовом
func (c *client) Table(ctx context.Context, coords []domain.Coordinate) ([][]*float64, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("coordinates cannot be empty")
	}

	reqURL := fmt.Sprintf("%s/table/v1/%s/%s?annotations=distance",
		c.baseURL, c.profile, coordinatePath(coords))

	c.logger.Debug("Calling OSRM Table API",
		zap.Int("points", len(coords)))

	var tableResp tableResponse
	if err := c.getJSON(ctx, reqURL, &tableResp); err != nil {
		return nil, err
	}

	if tableResp.Code != "Ok" {
		c.logger.Error("OSRM Table API returned non-OK code",
			zap.String("code", tableResp.Code))
		return nil, fmt.Errorf("osrm table API returned code: %s", tableResp.Code)
	}

	if len(tableResp.Distances) != len(coords) {
		return nil, fmt.Errorf("osrm table API returned %d rows for %d points",
			len(tableResp.Distances), len(coords))
	}
	for i, row := range tableResp.Distances {
		if len(row) != len(coords) {
			return nil, fmt.Errorf("osrm table API returned %d columns in row %d for %d points",
				len(row), i, len(coords))
		}
	}

	return tableResp.Distances, nil
}

// Route строит участок маршрута между двумя точками. Геометрия
// запрашивается только при includeGeometry, для парных добивок
// матрицы она не нужна.
func (c *client) Route(ctx context.Context, origin, dest domain.Coordinate, includeGeometry bool) (*domain.RouteLeg, error) {
	overview := "overview=false"
	if includeGeometry {
		overview = "overview=full&geometries=geojson"
	}

	reqURL := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?%s",
		c.baseURL, c.profile,
		origin.Lon, origin.Lat,
		dest.Lon, dest.Lat,
		overview)

	var routeResp routeResponse
	if err := c.getJSON(ctx, reqURL, &routeResp); err != nil {
		return nil, err
	}

	if routeResp.Code != "Ok" {
		return nil, fmt.Errorf("osrm route API returned code: %s", routeResp.Code)
	}

	if len(routeResp.Routes) == 0 {
		return nil, fmt.Errorf("osrm route API returned no routes")
	}

	route := routeResp.Routes[0]
	leg := &domain.RouteLeg{
		DistanceKm:  route.Distance / 1000.0,
		DurationMin: route.Duration / 60.0,
	}

	if includeGeometry && route.Geometry != nil {
		leg.Geometry = make([][2]float64, 0, len(route.Geometry.Coordinates))
		for _, point := range route.Geometry.Coordinates {
			if len(point) < 2 {
				continue
			}
			// GeoJSON отдаёт [lon, lat], наружу выдаём [lat, lon]
			leg.Geometry = append(leg.Geometry, [2]float64{point[1], point[0]})
		}
	}

	return leg, nil
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OSRM API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("osrm API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// coordinatePath собирает координаты в формат OSRM: "lon,lat;lon,lat"
func coordinatePath(coords []domain.Coordinate) string {
	parts := make([]string, len(coords))
	for i, coord := range coords {
		parts[i] = fmt.Sprintf("%f,%f", coord.Lon, coord.Lat)
	}
	return strings.Join(parts, ";")
}
