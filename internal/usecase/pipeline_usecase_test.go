package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/domain/repository"
	"github.com/route-poi-service/internal/geometry"
	"github.com/route-poi-service/internal/usecase/dto"
)

// MockProviderClient - мок клиента провайдера POI
type MockProviderClient struct {
	mock.Mock
	name string
}

func (m *MockProviderClient) Name() string {
	return m.name
}

func (m *MockProviderClient) SearchPOIs(
	ctx context.Context,
	center domain.GeoPoint,
	radiusM float64,
	category string,
) ([]domain.ParseOutcome, error) {
	args := m.Called(ctx, center, radiusM, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParseOutcome), args.Error(1)
}

func newTestPipeline(providers []repository.ProviderClient) *PipelineUseCase {
	logger := zap.NewNop()
	cache := geometry.NewRouteCache(time.Minute, time.Minute)
	projector := NewProjectorUseCase(cache, logger, 1000, 50)
	dedup := NewDedupUseCase(logger, 50, domain.DefaultProviderPriority, 40)
	report := NewReportUseCase(logger)
	return NewPipelineUseCase(projector, dedup, report, cache, providers, logger, 25, 5000)
}

func testRoute() *domain.RouteGeometry {
	return &domain.RouteGeometry{Points: []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 0.5, Lon: 0},
	}}
}

func osmBatch(t *testing.T) domain.RawBatch {
	t.Helper()
	payload := `{
		"elements": [
			{"type": "node", "id": 101, "lat": 0.1, "lon": 0.0001,
			 "tags": {"amenity": "fuel", "name": "Posto Shell"}},
			{"type": "node", "id": 102, "lat": 0.2, "lon": 0.0001,
			 "tags": {"amenity": "restaurant", "name": "Bar Luz"}},
			{"type": "node", "id": 103,
			 "tags": {"amenity": "fuel", "name": "No Geometry"}}
		]
	}`
	return domain.RawBatch{
		Provider: domain.ProviderOSM,
		Category: domain.CategoryGasStation,
		Payload:  json.RawMessage(payload),
	}
}

func TestPipelineUseCase_Run(t *testing.T) {
	t.Run("processes raw batches end to end", func(t *testing.T) {
		uc := newTestPipeline(nil)

		result, err := uc.Run(context.Background(), testRoute(), []domain.RawBatch{osmBatch(t)})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, 2, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.ByProvider[domain.ProviderOSM])
		assert.Equal(t, 1, result.Summary.ByCategory[domain.CategoryGasStation])
		assert.Equal(t, 1, result.Summary.SkippedRecords)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.Summary.RunID.String())

		// порядок - по дистанции вдоль маршрута
		require.Len(t, result.POIs, 2)
		assert.Equal(t, "osm_node_101", result.POIs[0].ExternalID)
		assert.Equal(t, "osm_node_102", result.POIs[1].ExternalID)
		assert.Less(t, result.POIs[0].DistanceAlongRouteKm, result.POIs[1].DistanceAlongRouteKm)
	})

	t.Run("empty input yields empty result with warning", func(t *testing.T) {
		uc := newTestPipeline(nil)

		result, err := uc.Run(context.Background(), testRoute(), nil)
		require.NoError(t, err)

		assert.Zero(t, result.Summary.Total)
		assert.Empty(t, result.POIs)
		assert.Contains(t, result.Summary.Warnings, "no POIs found")
	})

	t.Run("malformed batch recorded as provider error", func(t *testing.T) {
		uc := newTestPipeline(nil)

		bad := domain.RawBatch{
			Provider: domain.ProviderHERE,
			Payload:  json.RawMessage(`{"items": `),
		}
		result, err := uc.Run(context.Background(), testRoute(), []domain.RawBatch{bad, osmBatch(t)})
		require.NoError(t, err)

		// сбой одного batch'а не мешает обработке остальных
		assert.Equal(t, 2, result.Summary.Total)
		require.Contains(t, result.Summary.ProviderErrors, domain.ProviderHERE)
	})

	t.Run("degenerate route yields warning not error", func(t *testing.T) {
		uc := newTestPipeline(nil)

		route := &domain.RouteGeometry{Points: []domain.GeoPoint{{Lat: 0, Lon: 0}}}
		result, err := uc.Run(context.Background(), route, []domain.RawBatch{osmBatch(t)})
		require.NoError(t, err)

		assert.Empty(t, result.POIs)
		assert.Contains(t, result.Summary.Warnings,
			"cannot project POIs: route geometry has fewer than 2 points")
	})

	t.Run("output is deterministic across runs", func(t *testing.T) {
		batches := []domain.RawBatch{osmBatch(t)}

		first, err := newTestPipeline(nil).Run(context.Background(), testRoute(), batches)
		require.NoError(t, err)
		second, err := newTestPipeline(nil).Run(context.Background(), testRoute(), batches)
		require.NoError(t, err)

		firstJSON, err := json.Marshal(first.POIs)
		require.NoError(t, err)
		secondJSON, err := json.Marshal(second.POIs)
		require.NoError(t, err)
		assert.Equal(t, firstJSON, secondJSON)
	})
}

func TestPipelineUseCase_RunWithProviders(t *testing.T) {
	t.Run("failed provider does not break the others", func(t *testing.T) {
		poi := normPOI("here_ok", domain.ProviderHERE, "Shell", domain.CategoryGasStation, 0.1, 0.0001)
		good := &MockProviderClient{name: domain.ProviderHERE}
		good.On("SearchPOIs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.ParseOutcome{domain.Parsed(poi)}, nil)

		bad := &MockProviderClient{name: domain.ProviderGoogle}
		bad.On("SearchPOIs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("upstream timeout"))

		uc := newTestPipeline([]repository.ProviderClient{good, bad})

		result, err := uc.RunWithProviders(
			context.Background(), testRoute(), []string{domain.CategoryGasStation}, 5000)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Summary.Total)
		assert.Equal(t, "here_ok", result.POIs[0].ExternalID)
		assert.Contains(t, result.Summary.ProviderErrors, domain.ProviderGoogle)
		good.AssertExpectations(t)
		bad.AssertExpectations(t)
	})

	t.Run("repeated record from multiple search points counted once", func(t *testing.T) {
		poi := normPOI("osm_node_7", domain.ProviderOSM, "Camp", domain.CategoryCamping, 0.3, 0)
		client := &MockProviderClient{name: domain.ProviderOSM}
		client.On("SearchPOIs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.ParseOutcome{domain.Parsed(poi)}, nil)

		uc := newTestPipeline([]repository.ProviderClient{client})

		result, err := uc.RunWithProviders(
			context.Background(), testRoute(), []string{domain.CategoryCamping}, 5000)
		require.NoError(t, err)

		// маршрут ~55.6 км, шаг 25 км: несколько точек поиска, запись одна
		assert.Greater(t, len(client.Calls), 1)
		assert.Equal(t, 1, result.Summary.Total)
	})
}

func TestPipelineUseCase_RunWithRequest(t *testing.T) {
	t.Run("rejects request with a single point", func(t *testing.T) {
		uc := newTestPipeline(nil)

		_, err := uc.RunWithRequest(context.Background(), &dto.RoutePOIRequest{
			Points:     []dto.PointInput{{Lat: 0, Lon: 0}},
			Categories: []string{domain.CategoryGasStation},
		})
		require.Error(t, err)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		uc := newTestPipeline(nil)

		_, err := uc.RunWithRequest(context.Background(), &dto.RoutePOIRequest{
			Points:     []dto.PointInput{{Lat: 0, Lon: 0}, {Lat: 0.5, Lon: 0}},
			Categories: []string{"spaceport"},
		})
		require.Error(t, err)
	})

	t.Run("valid request runs the provider search", func(t *testing.T) {
		client := &MockProviderClient{name: domain.ProviderOSM}
		client.On("SearchPOIs", mock.Anything, mock.Anything, 5000.0, domain.CategoryHotel).
			Return([]domain.ParseOutcome{}, nil)

		uc := newTestPipeline([]repository.ProviderClient{client})

		result, err := uc.RunWithRequest(context.Background(), &dto.RoutePOIRequest{
			Points:     []dto.PointInput{{Lat: 0, Lon: 0}, {Lat: 0.5, Lon: 0}},
			Categories: []string{domain.CategoryHotel},
		})
		require.NoError(t, err)
		assert.Zero(t, result.Summary.Total)
		client.AssertExpectations(t)
	})
}
