package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-poi-service/internal/config"
	"github.com/route-poi-service/internal/domain"
)

func TestClient_SearchPOIs(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/interpreter", r.URL.Path)

			require.NoError(t, r.ParseForm())
			query := r.PostForm.Get("data")
			assert.Contains(t, query, `node["amenity"="fuel"]`)
			assert.Contains(t, query, `way["amenity"="fuel"]`)
			assert.Contains(t, query, "out center")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"elements": [
					{"type": "node", "id": 42, "lat": 41.39, "lon": 2.17,
					 "tags": {"amenity": "fuel", "name": "Repsol", "phone": "+34 93 000"}},
					{"type": "way", "id": 7, "center": {"lat": 41.40, "lon": 2.18},
					 "tags": {"amenity": "fuel", "name": "Cepsa"}}
				]
			}`))
		}))
		defer server.Close()

		cfg := &config.OverpassConfig{
			BaseURL:        server.URL,
			RequestTimeout: 30,
		}
		client := NewOverpassClient(cfg, logger)

		outcomes, err := client.SearchPOIs(
			context.Background(), domain.GeoPoint{Lat: 41.39, Lon: 2.17}, 1000, domain.CategoryGasStation)
		require.NoError(t, err)
		require.Len(t, outcomes, 2)

		require.True(t, outcomes[0].IsParsed())
		assert.Equal(t, "osm_node_42", outcomes[0].POI.ExternalID)
		assert.Equal(t, domain.CategoryGasStation, outcomes[0].POI.Category)
		require.NotNil(t, outcomes[0].POI.Phone)
		assert.Equal(t, "+34 93 000", *outcomes[0].POI.Phone)

		// way отдает координаты через center
		require.True(t, outcomes[1].IsParsed())
		assert.Equal(t, "osm_way_7", outcomes[1].POI.ExternalID)
		assert.InDelta(t, 41.40, outcomes[1].POI.Location.Lat, 1e-9)
	})

	t.Run("unmapped category is a no-op", func(t *testing.T) {
		cfg := &config.OverpassConfig{
			BaseURL:        "https://overpass-api.de",
			RequestTimeout: 30,
		}
		client := NewOverpassClient(cfg, logger)

		outcomes, err := client.SearchPOIs(
			context.Background(), domain.GeoPoint{}, 1000, "spaceport")
		require.NoError(t, err)
		assert.Nil(t, outcomes)
	})

	t.Run("api error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("rate limited"))
		}))
		defer server.Close()

		cfg := &config.OverpassConfig{
			BaseURL:        server.URL,
			RequestTimeout: 30,
		}
		client := NewOverpassClient(cfg, logger)

		outcomes, err := client.SearchPOIs(
			context.Background(), domain.GeoPoint{}, 1000, domain.CategoryHotel)
		assert.Error(t, err)
		assert.Nil(t, outcomes)
		assert.Contains(t, err.Error(), "overpass API error")
	})
}
