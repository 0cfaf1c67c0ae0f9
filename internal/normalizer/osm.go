package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/route-poi-service/internal/domain"
)

// osmResponse - ответ Overpass API
type osmResponse struct {
	Elements []osmElement `json:"elements"`
}

// osmElement - элемент OSM (node или way с вычисленным центром)
type osmElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *osmCenter        `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type osmCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NormalizeOSM разбирает ответ Overpass API в нормализованные POI
func NormalizeOSM(payload json.RawMessage) ([]domain.ParseOutcome, error) {
	var resp osmResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	outcomes := make([]domain.ParseOutcome, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		outcomes = append(outcomes, normalizeOSMElement(el))
	}
	return outcomes, nil
}

func normalizeOSMElement(el osmElement) domain.ParseOutcome {
	lat, lon := el.Lat, el.Lon
	if el.Center != nil {
		// way/relation отдают координаты через center
		lat, lon = el.Center.Lat, el.Center.Lon
	}
	if lat == 0 && lon == 0 {
		return domain.Skipped("missing geometry")
	}
	if !validCoordinates(lat, lon) {
		return domain.Skipped("coordinates out of range")
	}

	raw, _ := json.Marshal(el)

	poi := domain.NormalizedPOI{
		ExternalID: fmt.Sprintf("osm_%s_%d", el.Type, el.ID),
		Provider:   domain.ProviderOSM,
		Name:       el.Tags["name"],
		Category:   ClassifyOSMTags(el.Tags),
		Location:   domain.GeoPoint{Lat: lat, Lon: lon},
		Address:    strPtr(osmAddress(el.Tags)),
		Phone:      strPtr(firstNonEmpty(el.Tags["phone"], el.Tags["contact:phone"])),
		Website:    strPtr(firstNonEmpty(el.Tags["website"], el.Tags["contact:website"], el.Tags["url"])),
		RawData:    raw,
	}

	return domain.Parsed(poi)
}

// ClassifyOSMTags определяет категорию таксономии по тегам OSM.
// Неизвестные теги дают категорию other.
func ClassifyOSMTags(tags map[string]string) string {
	for _, key := range []string{"amenity", "tourism", "highway", "barrier", "place"} {
		if value, ok := tags[key]; ok {
			if category, ok := domain.OSMTagToCategory[key][value]; ok {
				return category
			}
		}
	}
	return domain.CategoryOther
}

// osmAddress собирает адрес из addr:* тегов
func osmAddress(tags map[string]string) string {
	parts := make([]string, 0, 3)
	if street := tags["addr:street"]; street != "" {
		if number := tags["addr:housenumber"]; number != "" {
			parts = append(parts, street+" "+number)
		} else {
			parts = append(parts, street)
		}
	}
	if city := tags["addr:city"]; city != "" {
		parts = append(parts, city)
	}
	if postcode := tags["addr:postcode"]; postcode != "" {
		parts = append(parts, postcode)
	}
	return strings.Join(parts, ", ")
}
