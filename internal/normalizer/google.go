package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/route-poi-service/internal/domain"
)

// googleResponse - ответ Google Places Nearby Search API
type googleResponse struct {
	Results []googleResult `json:"results"`
	Status  string         `json:"status"`
}

type googleResult struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	Geometry         *googleGeometry `json:"geometry"`
	Types            []string        `json:"types"`
	Vicinity         string          `json:"vicinity"`
	FormattedAddress string          `json:"formatted_address"`
	Rating           *float64        `json:"rating"`
	UserRatingsTotal *int            `json:"user_ratings_total"`
	PhoneNumber      string          `json:"formatted_phone_number"`
	Website          string          `json:"website"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NormalizeGoogle разбирает ответ Google Places в нормализованные POI
func NormalizeGoogle(payload json.RawMessage) ([]domain.ParseOutcome, error) {
	var resp googleResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode google places response: %w", err)
	}

	outcomes := make([]domain.ParseOutcome, 0, len(resp.Results))
	for _, r := range resp.Results {
		outcomes = append(outcomes, normalizeGoogleResult(r))
	}
	return outcomes, nil
}

func normalizeGoogleResult(r googleResult) domain.ParseOutcome {
	if r.PlaceID == "" {
		return domain.Skipped("missing place_id")
	}
	if r.Geometry == nil {
		return domain.Skipped("missing geometry")
	}
	lat := r.Geometry.Location.Lat
	lon := r.Geometry.Location.Lng
	if !validCoordinates(lat, lon) {
		return domain.Skipped("coordinates out of range")
	}

	raw, _ := json.Marshal(r)

	poi := domain.NormalizedPOI{
		ExternalID:  "google_" + r.PlaceID,
		Provider:    domain.ProviderGoogle,
		Name:        r.Name,
		Category:    ClassifyGoogleTypes(r.Types),
		Location:    domain.GeoPoint{Lat: lat, Lon: lon},
		Address:     strPtr(firstNonEmpty(r.Vicinity, r.FormattedAddress)),
		Phone:       strPtr(r.PhoneNumber),
		Website:     strPtr(r.Website),
		Rating:      r.Rating,
		RatingCount: r.UserRatingsTotal,
		RawData:     raw,
	}

	return domain.Parsed(poi)
}

// ClassifyGoogleTypes определяет категорию по списку types.
// Выигрывает первый тип, известный таксономии.
func ClassifyGoogleTypes(types []string) string {
	for _, t := range types {
		if category, ok := domain.GoogleTypeToCategory[t]; ok {
			return category
		}
	}
	return domain.CategoryOther
}
