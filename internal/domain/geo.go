package domain

// GeoPoint представляет точку в координатах WGS84 (градусы)
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RoadSide - сторона дороги относительно направления движения
type RoadSide string

const (
	SideLeft   RoadSide = "left"
	SideRight  RoadSide = "right"
	SideCenter RoadSide = "center"
)

// RouteGeometry представляет ломаную маршрута от точки A к точке B.
// Точки идут в порядке движения.
type RouteGeometry struct {
	Points []GeoPoint `json:"points"`
}

// duplicatePointToleranceDeg - допуск на совпадающие соседние вершины
const duplicatePointToleranceDeg = 1e-9

// IsValid проверяет, что геометрия содержит минимум 2 точки
// и не имеет совпадающих соседних вершин
func (r *RouteGeometry) IsValid() bool {
	if len(r.Points) < 2 {
		return false
	}
	for i := 1; i < len(r.Points); i++ {
		dLat := r.Points[i].Lat - r.Points[i-1].Lat
		dLon := r.Points[i].Lon - r.Points[i-1].Lon
		if dLat < duplicatePointToleranceDeg && dLat > -duplicatePointToleranceDeg &&
			dLon < duplicatePointToleranceDeg && dLon > -duplicatePointToleranceDeg {
			return false
		}
	}
	return true
}

// SegmentCount возвращает количество сегментов маршрута
func (r *RouteGeometry) SegmentCount() int {
	if len(r.Points) < 2 {
		return 0
	}
	return len(r.Points) - 1
}
