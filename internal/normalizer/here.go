package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/route-poi-service/internal/domain"
)

// hereResponse - ответ HERE Browse API
type hereResponse struct {
	Items []hereItem `json:"items"`
}

type hereItem struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Position   *herePosition  `json:"position"`
	Address    hereAddress    `json:"address"`
	Categories []hereCategory `json:"categories"`
	Contacts   []hereContact  `json:"contacts"`
}

type herePosition struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type hereAddress struct {
	Label string `json:"label"`
}

type hereCategory struct {
	ID      string `json:"id"`
	Primary bool   `json:"primary"`
}

type hereContact struct {
	Phone []hereContactValue `json:"phone"`
	WWW   []hereContactValue `json:"www"`
}

type hereContactValue struct {
	Value string `json:"value"`
}

// NormalizeHERE разбирает ответ HERE Browse в нормализованные POI
func NormalizeHERE(payload json.RawMessage) ([]domain.ParseOutcome, error) {
	var resp hereResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode here response: %w", err)
	}

	outcomes := make([]domain.ParseOutcome, 0, len(resp.Items))
	for _, item := range resp.Items {
		outcomes = append(outcomes, normalizeHEREItem(item))
	}
	return outcomes, nil
}

func normalizeHEREItem(item hereItem) domain.ParseOutcome {
	if item.ID == "" {
		return domain.Skipped("missing id")
	}
	if item.Position == nil {
		return domain.Skipped("missing geometry")
	}
	if !validCoordinates(item.Position.Lat, item.Position.Lng) {
		return domain.Skipped("coordinates out of range")
	}

	raw, _ := json.Marshal(item)

	poi := domain.NormalizedPOI{
		ExternalID: "here_" + item.ID,
		Provider:   domain.ProviderHERE,
		Name:       item.Title,
		Category:   ClassifyHERECategories(item.Categories),
		Location:   domain.GeoPoint{Lat: item.Position.Lat, Lon: item.Position.Lng},
		Address:    strPtr(item.Address.Label),
		Phone:      strPtr(hereContactValueOf(item.Contacts, contactPhone)),
		Website:    strPtr(hereContactValueOf(item.Contacts, contactWWW)),
		RawData:    raw,
	}

	return domain.Parsed(poi)
}

// ClassifyHERECategories определяет категорию по списку категорий HERE.
// Primary-категория имеет приоритет, затем первая известная.
func ClassifyHERECategories(categories []hereCategory) string {
	for _, c := range categories {
		if c.Primary {
			if category, ok := domain.HERECategoryToCategory[c.ID]; ok {
				return category
			}
		}
	}
	for _, c := range categories {
		if category, ok := domain.HERECategoryToCategory[c.ID]; ok {
			return category
		}
	}
	return domain.CategoryOther
}

type hereContactKind int

const (
	contactPhone hereContactKind = iota
	contactWWW
)

// hereContactValueOf возвращает первое непустое значение контакта.
// HERE может отдавать несколько телефонов - берем первый.
func hereContactValueOf(contacts []hereContact, kind hereContactKind) string {
	for _, c := range contacts {
		values := c.Phone
		if kind == contactWWW {
			values = c.WWW
		}
		for _, v := range values {
			if v.Value != "" {
				return v.Value
			}
		}
	}
	return ""
}
