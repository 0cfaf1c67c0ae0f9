package here

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

// идентификатор категории HERE для каждой категории таксономии
var hereCategoryIDs = map[string]string{
	domain.CategoryGasStation: "700-7600-0116",
	domain.CategoryRestaurant: "100-1000-0000",
	domain.CategoryHotel:      "500-5000-0053",
	domain.CategoryCamping:    "500-5100-0056",
	domain.CategoryHospital:   "800-8000-0159",
	domain.CategoryPolice:     "700-7300-0111",
	domain.CategoryRestArea:   "400-4300-0199",
}

// NewHEREClient создает новый клиент HERE Browse API
func NewHEREClient(cfg *config.HEREConfig, logger *zap.Logger) repository.ProviderClient {
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
	return domain.ProviderHERE
}

// SearchPOIs ищет POI категории вокруг точки через Browse endpoint
func (c *client) SearchPOIs(ctx context.Context, center domain.GeoPoint, radiusM float64, category string) ([]domain.ParseOutcome, error) {
	categoryID, ok := hereCategoryIDs[category]
	if !ok {
		c.logger.Debug("Category has no HERE id", zap.String("category", category))
		return nil, nil
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("at", fmt.Sprintf("%f,%f", center.Lat, center.Lon))
	params.Set("in", fmt.Sprintf("circle:%f,%f;r=%.0f", center.Lat, center.Lon, radiusM))
	params.Set("categories", categoryID)
	params.Set("limit", "100")

	endpoint := fmt.Sprintf("%s/v1/browse?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling HERE Browse API",
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
		c.logger.Error("HERE API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("here API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return normalizer.NormalizeHERE(body)
}
