package googleplaces

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/route-poi-service/internal/config"
	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/domain/repository"
	"github.com/route-poi-service/internal/normalizer"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// тип Google Places для каждой категории таксономии
var placeTypes = map[string]string{
	domain.CategoryGasStation: "gas_station",
	domain.CategoryRestaurant: "restaurant",
	domain.CategoryHotel:      "lodging",
	domain.CategoryCamping:    "campground",
	domain.CategoryHospital:   "hospital",
	domain.CategoryPolice:     "police",
	domain.CategoryCity:       "locality",
}

// NewGooglePlacesClient создает новый клиент Google Places API
func NewGooglePlacesClient(cfg *config.GoogleConfig, logger *zap.Logger) repository.ProviderClient {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// Name возвращает идентификатор провайдера
func (c *client) Name() string {
	return domain.ProviderGoogle
}

// SearchPOIs ищет POI категории вокруг точки через Nearby Search
func (c *client) SearchPOIs(ctx context.Context, center domain.GeoPoint, radiusM float64, category string) ([]domain.ParseOutcome, error) {
	placeType, ok := placeTypes[category]
	if !ok {
		c.logger.Debug("Category has no Google Places type", zap.String("category", category))
		return nil, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lon))
	params.Set("radius", fmt.Sprintf("%.0f", radiusM))
	params.Set("type", placeType)

	endpoint := fmt.Sprintf("%s/maps/api/place/nearbysearch/json?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Google Places API",
		zap.String("type", placeType),
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
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
		c.logger.Error("Google Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("google places API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return normalizer.NormalizeGoogle(body)
}
