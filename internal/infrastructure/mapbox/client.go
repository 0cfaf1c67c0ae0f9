package mapbox

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
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// canonical category ID Mapbox Search Box для каждой категории таксономии
var categoryIDs = map[string]string{
	domain.CategoryGasStation: "gas_station",
	domain.CategoryRestaurant: "restaurant",
	domain.CategoryHotel:      "hotel",
	domain.CategoryCamping:    "campground",
	domain.CategoryHospital:   "hospital",
	domain.CategoryPolice:     "police_station",
	domain.CategoryRestArea:   "rest_area",
}

// NewMapboxClient создает новый клиент Mapbox Search Box API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.ProviderClient {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// Name возвращает идентификатор провайдера
func (c *client) Name() string {
	return domain.ProviderMapbox
}

// SearchPOIs ищет POI категории вокруг точки через category search
func (c *client) SearchPOIs(ctx context.Context, center domain.GeoPoint, radiusM float64, category string) ([]domain.ParseOutcome, error) {
	categoryID, ok := categoryIDs[category]
	if !ok {
		c.logger.Debug("Category has no Mapbox canonical id", zap.String("category", category))
		return nil, nil
	}

	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("proximity", fmt.Sprintf("%f,%f", center.Lon, center.Lat))
	params.Set("limit", "25")

	endpoint := fmt.Sprintf("%s/search/searchbox/v1/category/%s?%s", c.baseURL, categoryID, params.Encode())

	c.logger.Debug("Calling Mapbox Search Box API",
		zap.String("category", categoryID),
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
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return normalizer.NormalizeMapbox(body)
}
