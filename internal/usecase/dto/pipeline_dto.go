package dto

import "github.com/route-poi-service/internal/domain"

// PointInput - точка маршрута во входном запросе
type PointInput struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// RoutePOIRequest - запрос на поиск POI вдоль маршрута
type RoutePOIRequest struct {
	Points        []PointInput `json:"points" validate:"required,min=2,dive"`
	Categories    []string     `json:"categories" validate:"required,min=1"`
	SearchRadiusM float64      `json:"search_radius_m" validate:"omitempty,gt=0,lte=100000"`
}

// ToRouteGeometry преобразует запрос в геометрию маршрута
func (r *RoutePOIRequest) ToRouteGeometry() *domain.RouteGeometry {
	points := make([]domain.GeoPoint, 0, len(r.Points))
	for _, p := range r.Points {
		points = append(points, domain.GeoPoint{Lat: p.Lat, Lon: p.Lon})
	}
	return &domain.RouteGeometry{Points: points}
}

// RoutePOIResponse - ответ с упорядоченной последовательностью POI
type RoutePOIResponse struct {
	POIs    []domain.QualityAnnotatedPOI `json:"pois"`
	Summary domain.PipelineSummary       `json:"summary"`
}
