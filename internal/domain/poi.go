package domain

import "encoding/json"

// NormalizedPOI представляет точку интереса после унификации схемы провайдера.
// Запись неизменяемая: слияние дубликатов создает новую запись.
type NormalizedPOI struct {
	ExternalID  string          `json:"external_id"`
	Provider    string          `json:"provider"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Location    GeoPoint        `json:"location"`
	Address     *string         `json:"address,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Website     *string         `json:"website,omitempty"`
	Rating      *float64        `json:"rating,omitempty"`
	RatingCount *int            `json:"rating_count,omitempty"`
	RawData     json.RawMessage `json:"raw_data,omitempty"`
}

// OptionalFieldCount возвращает количество заполненных опциональных полей.
// Используется при выборе канонической записи в группе дубликатов.
func (p *NormalizedPOI) OptionalFieldCount() int {
	count := 0
	if p.Address != nil && *p.Address != "" {
		count++
	}
	if p.Phone != nil && *p.Phone != "" {
		count++
	}
	if p.Website != nil && *p.Website != "" {
		count++
	}
	if p.Rating != nil {
		count++
	}
	if p.RatingCount != nil {
		count++
	}
	return count
}

// RecalculationStep - один шаг пересчета размещения POI
type RecalculationStep struct {
	Reason       string   `json:"reason"`
	SegmentIndex int      `json:"segment_index"`
	Side         RoadSide `json:"side"`
}

// DebugTrail - структурированный след того, как было вычислено размещение POI
type DebugTrail struct {
	SegmentWindowStart int                 `json:"segment_window_start"`
	SegmentWindowEnd   int                 `json:"segment_window_end"`
	TieBreakApplied    bool                `json:"tie_break_applied"`
	RequiresDetour     bool                `json:"requires_detour"`
	JunctionPoint      *GeoPoint           `json:"junction_point,omitempty"`
	AccessDistanceM    float64             `json:"access_distance_m,omitempty"`
	Recalculations     []RecalculationStep `json:"recalculations,omitempty"`
}

// PlacedPOI представляет POI, спроецированный на геометрию маршрута
type PlacedPOI struct {
	NormalizedPOI

	SegmentIndex           int        `json:"segment_index"`
	DistanceAlongRouteKm   float64    `json:"distance_along_route_km"`
	PerpendicularDistanceM float64    `json:"perpendicular_distance_m"`
	Side                   RoadSide   `json:"side"`
	DebugTrail             DebugTrail `json:"debug_trail"`
}

// QualityAnnotatedPOI представляет размещенный POI с оценкой качества данных
type QualityAnnotatedPOI struct {
	PlacedPOI

	QualityScore  int      `json:"quality_score"`
	MissingTags   []string `json:"missing_tags,omitempty"`
	IsLowQuality  bool     `json:"is_low_quality"`
	IsDuplicateOf *string  `json:"is_duplicate_of,omitempty"`
}
