package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/route-optimizer/internal/config"
	"github.com/route-optimizer/internal/domain"
	"github.com/route-optimizer/internal/domain/repository"
	"go.uber.org/zap"
)

const providerName = "nominatim"

type client struct {
	httpClient   *http.Client
	baseURL      string
	countryCodes string
	userAgent    string
	logger       *zap.Logger
}

// NewClient создает клиент Nominatim - строгий fallback-провайдер.
// Политика сервиса требует осмысленный User-Agent и паузу между
// запросами; паузу выдерживает resolver через общий gate.
func NewClient(cfg *config.NominatimConfig, logger *zap.Logger) repository.GeocodingProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:      cfg.BaseURL,
		countryCodes: cfg.CountryCodes,
		userAgent:    cfg.UserAgent,
		logger:       logger,
	}
}

// Name возвращает имя провайдера
func (c *client) Name() string {
	return providerName
}

// nominatimPlace - элемент ответа Nominatim. lat/lon приходят строками.
type nominatimPlace struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

// Search возвращает кандидатов по убыванию importance. Ответы 403 и 429
// оборачиваются в domain.ErrProviderRateLimited.
func (c *client) Search(ctx context.Context, query string, limit int) ([]domain.GeocodeCandidate, error) {
	if limit < 1 {
		limit = 1
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(limit))
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Nominatim API",
		zap.String("query", query),
		zap.Int("limit", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("Nominatim rate limited",
			zap.Int("status_code", resp.StatusCode),
			zap.String("query", query))
		return nil, fmt.Errorf("nominatim status %d: %w", resp.StatusCode, domain.ErrProviderRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Nominatim API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("nominatim API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]domain.GeocodeCandidate, 0, len(places))
	for _, place := range places {
		lat, latErr := strconv.ParseFloat(place.Lat, 64)
		lon, lonErr := strconv.ParseFloat(place.Lon, 64)
		if latErr != nil || lonErr != nil {
			c.logger.Warn("Skipping place with unparsable coordinates",
				zap.String("display_name", place.DisplayName))
			continue
		}

		candidates = append(candidates, domain.GeocodeCandidate{
			Name:        shortName(place.DisplayName),
			DisplayName: place.DisplayName,
			Lat:         lat,
			Lon:         lon,
			Type:        place.Type,
			Rank:        place.Importance,
		})
	}

	c.logger.Debug("Nominatim API call successful",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// shortName берёт первую часть display_name до запятой
func shortName(displayName string) string {
	if idx := strings.Index(displayName, ","); idx > 0 {
		return strings.TrimSpace(displayName[:idx])
	}
	return displayName
}
