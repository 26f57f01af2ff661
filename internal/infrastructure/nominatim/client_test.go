package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/route-optimizer/internal/config"
	"github.com/route-optimizer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const goaSearchResponse = `[
	{
		"display_name": "Goa, India",
		"lat": "15.3004543",
		"lon": "74.0855134",
		"type": "administrative",
		"importance": 0.72
	},
	{
		"display_name": "Goa Velha, North Goa, Goa, India",
		"lat": "15.4432",
		"lon": "73.8862",
		"type": "town",
		"importance": 0.41
	}
]`

func TestClient_Search(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("successful request parses string coordinates", func(t *testing.T) {
		var gotUA, gotFormat, gotCountry, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotFormat = r.URL.Query().Get("format")
			gotCountry = r.URL.Query().Get("countrycodes")
			gotQuery = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(goaSearchResponse))
		}))
		defer server.Close()

		cfg := &config.NominatimConfig{
			BaseURL:        server.URL,
			CountryCodes:   "in",
			UserAgent:      "route-optimizer/1.0",
			RequestTimeout: 10,
		}

		client := NewClient(cfg, logger)

		candidates, err := client.Search(context.Background(), "Goa", 2)
		require.NoError(t, err)

		assert.Equal(t, "route-optimizer/1.0", gotUA, "Nominatim policy requires a User-Agent")
		assert.Equal(t, "json", gotFormat)
		assert.Equal(t, "in", gotCountry)
		assert.Equal(t, "Goa", gotQuery)

		require.Len(t, candidates, 2)
		assert.Equal(t, "Goa", candidates[0].Name)
		assert.Equal(t, "Goa, India", candidates[0].DisplayName)
		assert.Equal(t, 15.3004543, candidates[0].Lat)
		assert.Equal(t, 74.0855134, candidates[0].Lon)
		assert.Equal(t, 0.72, candidates[0].Rank)
	})

	t.Run("forbidden maps to rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		cfg := &config.NominatimConfig{BaseURL: server.URL, UserAgent: "test", RequestTimeout: 10}
		client := NewClient(cfg, logger)

		_, err := client.Search(context.Background(), "Goa", 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProviderRateLimited)
	})

	t.Run("too many requests maps to rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		cfg := &config.NominatimConfig{BaseURL: server.URL, UserAgent: "test", RequestTimeout: 10}
		client := NewClient(cfg, logger)

		_, err := client.Search(context.Background(), "Goa", 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProviderRateLimited)
	})

	t.Run("server error is not rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		}))
		defer server.Close()

		cfg := &config.NominatimConfig{BaseURL: server.URL, UserAgent: "test", RequestTimeout: 10}
		client := NewClient(cfg, logger)

		_, err := client.Search(context.Background(), "Goa", 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrProviderRateLimited)
		assert.Contains(t, err.Error(), "nominatim API error")
	})

	t.Run("empty result set means not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		cfg := &config.NominatimConfig{BaseURL: server.URL, UserAgent: "test", RequestTimeout: 10}
		client := NewClient(cfg, logger)

		candidates, err := client.Search(context.Background(), "nowhere-at-all", 1)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("unparsable coordinates are skipped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"display_name": "Broken", "lat": "abc", "lon": "74.0", "importance": 0.5}]`))
		}))
		defer server.Close()

		cfg := &config.NominatimConfig{BaseURL: server.URL, UserAgent: "test", RequestTimeout: 10}
		client := NewClient(cfg, logger)

		candidates, err := client.Search(context.Background(), "broken", 1)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Goa", shortName("Goa, India"))
	assert.Equal(t, "Panaji", shortName("Panaji"))
	assert.Equal(t, "Mumbai", shortName("Mumbai , Maharashtra"))
}
