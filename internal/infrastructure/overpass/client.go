package overpass

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
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
	logger     *zap.Logger
}

// тег OSM для каждой категории таксономии
var categorySelectors = map[string][2]string{
	domain.CategoryGasStation: {"amenity", "fuel"},
	domain.CategoryRestaurant: {"amenity", "restaurant"},
	domain.CategoryHotel:      {"tourism", "hotel"},
	domain.CategoryCamping:    {"tourism", "camp_site"},
	domain.CategoryHospital:   {"amenity", "hospital"},
	domain.CategoryCity:       {"place", "city"},
	domain.CategoryTown:       {"place", "town"},
	domain.CategoryVillage:    {"place", "village"},
	domain.CategoryTollBooth:  {"barrier", "toll_booth"},
	domain.CategoryRestArea:   {"highway", "rest_area"},
	domain.CategoryPolice:     {"amenity", "police"},
}

// NewOverpassClient создает новый клиент Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.ProviderClient {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// Name возвращает идентификатор провайдера
func (c *client) Name() string {
	return domain.ProviderOSM
}

// SearchPOIs ищет POI категории вокруг точки через Overpass QL
func (c *client) SearchPOIs(ctx context.Context, center domain.GeoPoint, radiusM float64, category string) ([]domain.ParseOutcome, error) {
	selector, ok := categorySelectors[category]
	if !ok {
		c.logger.Debug("Category has no OSM selector", zap.String("category", category))
		return nil, nil
	}

	query := fmt.Sprintf(
		`[out:json][timeout:25];(node[%q=%q](around:%.0f,%f,%f);way[%q=%q](around:%.0f,%f,%f););out center;`,
		selector[0], selector[1], radiusM, center.Lat, center.Lon,
		selector[0], selector[1], radiusM, center.Lat, center.Lon,
	)

	form := url.Values{"data": {query}}
	endpoint := c.baseURL + "/api/interpreter"

	c.logger.Debug("Calling Overpass API",
		zap.String("category", category),
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Overpass API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("overpass API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return normalizer.NormalizeOSM(body)
}
