package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/route-poi-service/internal/domain"
)

// mapboxResponse - ответ Mapbox Search Box API (forward/category search)
type mapboxResponse struct {
	Features []mapboxFeature `json:"features"`
}

type mapboxFeature struct {
	Properties mapboxProperties `json:"properties"`
}

type mapboxProperties struct {
	MapboxID       string             `json:"mapbox_id"`
	Name           string             `json:"name"`
	FullAddress    string             `json:"full_address"`
	PlaceFormatted string             `json:"place_formatted"`
	POICategoryIDs []string           `json:"poi_category_ids"`
	Coordinates    *mapboxCoordinates `json:"coordinates"`
	Metadata       mapboxMetadata     `json:"metadata"`
}

type mapboxCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type mapboxMetadata struct {
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// NormalizeMapbox разбирает ответ Mapbox Search Box в нормализованные POI
func NormalizeMapbox(payload json.RawMessage) ([]domain.ParseOutcome, error) {
	var resp mapboxResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode mapbox response: %w", err)
	}

	outcomes := make([]domain.ParseOutcome, 0, len(resp.Features))
	for _, f := range resp.Features {
		outcomes = append(outcomes, normalizeMapboxFeature(f))
	}
	return outcomes, nil
}

func normalizeMapboxFeature(f mapboxFeature) domain.ParseOutcome {
	if f.Properties.MapboxID == "" {
		return domain.Skipped("missing mapbox_id")
	}
	if f.Properties.Coordinates == nil {
		return domain.Skipped("missing geometry")
	}
	lat := f.Properties.Coordinates.Latitude
	lon := f.Properties.Coordinates.Longitude
	if !validCoordinates(lat, lon) {
		return domain.Skipped("coordinates out of range")
	}

	raw, _ := json.Marshal(f)

	poi := domain.NormalizedPOI{
		ExternalID: "mapbox_" + f.Properties.MapboxID,
		Provider:   domain.ProviderMapbox,
		Name:       f.Properties.Name,
		Category:   ClassifyMapboxCategories(f.Properties.POICategoryIDs),
		Location:   domain.GeoPoint{Lat: lat, Lon: lon},
		Address:    strPtr(firstNonEmpty(f.Properties.FullAddress, f.Properties.PlaceFormatted)),
		Phone:      strPtr(f.Properties.Metadata.Phone),
		Website:    strPtr(f.Properties.Metadata.Website),
		RawData:    raw,
	}

	return domain.Parsed(poi)
}

// ClassifyMapboxCategories определяет категорию по списку poi_category_ids.
// Выигрывает первая категория, известная таксономии.
func ClassifyMapboxCategories(categoryIDs []string) string {
	for _, id := range categoryIDs {
		if category, ok := domain.MapboxCategoryToCategory[id]; ok {
			return category
		}
	}
	return domain.CategoryOther
}
