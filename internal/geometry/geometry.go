package geometry

import (
	"math"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/pkg/errors"
)

const (
	// EarthRadiusM - средний радиус Земли в метрах (сферическая аппроксимация)
	EarthRadiusM = 6371000.0

	degToRad = math.Pi / 180.0

	// метров в одном градусе широты
	metersPerDegree = EarthRadiusM * degToRad

	// допуск при сравнении расстояний до сегментов: расстояния в пределах
	// допуска считаются равными, выигрывает меньший индекс сегмента
	segmentTieEpsilonM = 1e-6
)

// Projection - результат проекции точки на ломаную маршрута
type Projection struct {
	// SegmentIndex - индекс ближайшего сегмента, -1 если геометрия пуста
	SegmentIndex int
	// DistanceM - расстояние от точки до ломаной в метрах
	DistanceM float64
	// Point - ближайшая точка на ломаной
	Point domain.GeoPoint
	// OffsetM - расстояние от начала сегмента до проекции в метрах
	OffsetM float64
	// TieBreak - true, если другой сегмент был на том же расстоянии
	// и сработало правило меньшего индекса
	TieBreak bool
}

// DistanceMeters вычисляет расстояние между двумя точками в метрах (формула Haversine)
func DistanceMeters(a, b domain.GeoPoint) float64 {
	dLat := (b.Lat - a.Lat) * degToRad
	dLon := (b.Lon - a.Lon) * degToRad

	lat1Rad := a.Lat * degToRad
	lat2Rad := b.Lat * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusM * c
}

// CumulativeDistances вычисляет накопленное расстояние в метрах до каждой
// вершины маршрута: [0, d1, d1+d2, ...]. Длина результата равна числу вершин.
func CumulativeDistances(points []domain.GeoPoint) []float64 {
	if len(points) == 0 {
		return nil
	}
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + DistanceMeters(points[i-1], points[i])
	}
	return cum
}

// TotalDistanceMeters возвращает полную длину маршрута в метрах
func TotalDistanceMeters(points []domain.GeoPoint) float64 {
	cum := CumulativeDistances(points)
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1]
}

// projectOntoSegment проецирует точку p на сегмент [s, e] в локальной
// плоской системе координат (долгота масштабируется на cos средней широты).
// Возвращает проекцию, расстояние до нее и offset от начала сегмента.
func projectOntoSegment(p, s, e domain.GeoPoint) (domain.GeoPoint, float64, float64) {
	meanLat := (s.Lat + e.Lat) / 2.0
	lonScale := math.Cos(meanLat * degToRad)

	// локальные координаты в метрах относительно начала сегмента
	sx, sy := 0.0, 0.0
	ex := (e.Lon - s.Lon) * lonScale * metersPerDegree
	ey := (e.Lat - s.Lat) * metersPerDegree
	px := (p.Lon - s.Lon) * lonScale * metersPerDegree
	py := (p.Lat - s.Lat) * metersPerDegree

	dx := ex - sx
	dy := ey - sy
	segLenSq := dx*dx + dy*dy

	t := 0.0
	if segLenSq > 0 {
		t = ((px-sx)*dx + (py-sy)*dy) / segLenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	proj := domain.GeoPoint{
		Lat: s.Lat + t*(e.Lat-s.Lat),
		Lon: s.Lon + t*(e.Lon-s.Lon),
	}

	dist := DistanceMeters(p, proj)
	offset := t * DistanceMeters(s, e)

	return proj, dist, offset
}

// NearestPointOnPolyline находит ближайший к точке сегмент ломаной.
// Сегменты рассматриваются как отрезки: ближайшей точкой может быть вершина.
// При равных расстояниях выигрывает меньший индекс сегмента.
// Для геометрии из менее чем 2 точек возвращает сентинел (индекс -1,
// бесконечное расстояние) и ErrEmptyGeometry.
func NearestPointOnPolyline(p domain.GeoPoint, points []domain.GeoPoint) (Projection, error) {
	if len(points) < 2 {
		return Projection{
			SegmentIndex: -1,
			DistanceM:    math.Inf(1),
		}, errors.ErrEmptyGeometry
	}

	best := Projection{
		SegmentIndex: -1,
		DistanceM:    math.Inf(1),
	}

	for i := 0; i < len(points)-1; i++ {
		proj, dist, offset := projectOntoSegment(p, points[i], points[i+1])

		if dist < best.DistanceM-segmentTieEpsilonM {
			best = Projection{
				SegmentIndex: i,
				DistanceM:    dist,
				Point:        proj,
				OffsetM:      offset,
			}
		} else if dist <= best.DistanceM+segmentTieEpsilonM {
			// равное расстояние: оставляем более ранний сегмент
			best.TieBreak = true
		}
	}

	return best, nil
}

// InterpolateAtDistance возвращает точку маршрута на заданном расстоянии
// от начала (в километрах). Значения за пределами маршрута обрезаются
// до начальной или конечной вершины.
func InterpolateAtDistance(points []domain.GeoPoint, cum []float64, targetKm float64) domain.GeoPoint {
	if len(points) == 0 {
		return domain.GeoPoint{}
	}

	targetM := targetKm * 1000.0
	if targetM <= 0 {
		return points[0]
	}

	total := cum[len(cum)-1]
	if targetM >= total {
		return points[len(points)-1]
	}

	for i := 1; i < len(cum); i++ {
		if targetM <= cum[i] {
			segLen := cum[i] - cum[i-1]
			if segLen <= 0 {
				return points[i]
			}
			frac := (targetM - cum[i-1]) / segLen
			return domain.GeoPoint{
				Lat: points[i-1].Lat + frac*(points[i].Lat-points[i-1].Lat),
				Lon: points[i-1].Lon + frac*(points[i].Lon-points[i-1].Lon),
			}
		}
	}

	return points[len(points)-1]
}

// SideOfRoad классифицирует положение точки относительно направления движения
// по сегменту. Если расстояние до сегмента меньше thresholdM - center.
// Иначе знак векторного произведения направления сегмента и вектора к точке
// в локальной плоской системе координат: положительный - left, отрицательный - right.
func SideOfRoad(p, segStart, segEnd domain.GeoPoint, thresholdM float64) domain.RoadSide {
	_, dist, _ := projectOntoSegment(p, segStart, segEnd)
	if dist < thresholdM {
		return domain.SideCenter
	}

	meanLat := (segStart.Lat + segEnd.Lat) / 2.0
	lonScale := math.Cos(meanLat * degToRad)

	dirX := (segEnd.Lon - segStart.Lon) * lonScale
	dirY := segEnd.Lat - segStart.Lat
	toPointX := (p.Lon - segStart.Lon) * lonScale
	toPointY := p.Lat - segStart.Lat

	cross := dirX*toPointY - dirY*toPointX
	if cross > 0 {
		return domain.SideLeft
	}
	return domain.SideRight
}
