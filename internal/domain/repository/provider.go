package repository

import (
	"context"

	"github.com/route-poi-service/internal/domain"
)

// ProviderClient определяет интерфейс поиска POI у внешнего провайдера геоданных
type ProviderClient interface {
	// Name возвращает идентификатор провайдера (osm, mapbox, here, google)
	Name() string

	// SearchPOIs ищет POI заданной категории вокруг точки.
	// Некорректные отдельные записи пропускаются, а не прерывают batch.
	SearchPOIs(ctx context.Context, center domain.GeoPoint, radiusM float64, category string) ([]domain.ParseOutcome, error)
}
