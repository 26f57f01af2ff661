package photon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/route-optimizer/internal/config"
	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"go.uber.org/zap"
)

const providerName = "photon"

type client struct {
	httpClient *http.Client
	baseURL    string
	bbox       string
	lang       string
	logger     *zap.Logger
}

// NewClient создает клиент Photon - основной (либеральный) провайдер
// геокодинга. Троттлинга не требует.
func NewClient(cfg *config.PhotonConfig, logger *zap.Logger) repository.GeocodingProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		bbox:    cfg.BBox,
		lang:    cfg.Lang,
		logger:  logger,
	}
}

// Name возвращает имя провайдера
func (c *client) Name() string {
	return providerName
}

// photonResponse - GeoJSON FeatureCollection от Photon API
type photonResponse struct {
	Features []photonFeature `json:"features"`
}

type photonFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
	Properties struct {
		Name    string `json:"name"`
		City    string `json:"city"`
		State   string `json:"state"`
		Country string `json:"country"`
		Type    string `json:"type"`
	} `json:"properties"`
}

// Search возвращает кандидатов в порядке выдачи Photon (релевантность
// убывает с позицией).
func (c *client) Search(ctx context.Context, query string, limit int) ([]domain.GeocodeCandidate, error) {
	if limit < 1 {
		limit = 1
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", limit))
	if c.lang != "" {
		params.Set("lang", c.lang)
	}
	if c.bbox != "" {
		// смещение выдачи к рабочему региону
		params.Set("bbox", c.bbox)
	}

	reqURL := fmt.Sprintf("%s/api?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Photon API",
		zap.String("query", query),
		zap.Int("limit", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Photon API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("photon API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var photonResp photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&photonResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]domain.GeocodeCandidate, 0, len(photonResp.Features))
	for i, feature := range photonResp.Features {
		if len(feature.Geometry.Coordinates) < 2 {
			continue
		}

		candidates = append(candidates, domain.GeocodeCandidate{
			Name:        feature.Properties.Name,
			DisplayName: buildDisplayName(feature),
			Lon:         feature.Geometry.Coordinates[0],
			Lat:         feature.Geometry.Coordinates[1],
			Type:        feature.Properties.Type,
			Rank:        1.0 / float64(i+1), // позиция в выдаче
		})
	}

	c.logger.Debug("Photon API call successful",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// buildDisplayName собирает человекочитаемое имя из свойств фичи
func buildDisplayName(feature photonFeature) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{
		feature.Properties.Name,
		feature.Properties.City,
		feature.Properties.State,
		feature.Properties.Country,
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
