package usecase

import (
	"sort"

	"go.uber.org/zap"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/geometry"
	"github.com/route-poi-service/internal/pkg/errors"
)

// ProjectorUseCase - use case проекции POI на геометрию маршрута
type ProjectorUseCase struct {
	routeCache           *geometry.RouteCache
	logger               *zap.Logger
	relevanceRadiusM     float64
	sideCenterThresholdM float64
}

// NewProjectorUseCase создает новый ProjectorUseCase
func NewProjectorUseCase(
	routeCache *geometry.RouteCache,
	logger *zap.Logger,
	relevanceRadiusM float64,
	sideCenterThresholdM float64,
) *ProjectorUseCase {
	return &ProjectorUseCase{
		routeCache:           routeCache,
		logger:               logger,
		relevanceRadiusM:     relevanceRadiusM,
		sideCenterThresholdM: sideCenterThresholdM,
	}
}

// Project проецирует нормализованные POI на маршрут и возвращает их
// в порядке возрастания расстояния от начала маршрута.
// Для вырожденной геометрии (<2 точек) возвращает пустой список
// и ErrEmptyGeometry: это условие данных, а не сбой пайплайна.
func (uc *ProjectorUseCase) Project(
	route *domain.RouteGeometry,
	pois []domain.NormalizedPOI,
	stats *PipelineStats,
) ([]domain.PlacedPOI, error) {
	if len(route.Points) < 2 {
		uc.logger.Warn("Cannot project POIs: route geometry has fewer than 2 points")
		return []domain.PlacedPOI{}, errors.ErrEmptyGeometry
	}

	cum := uc.routeCache.CumulativeDistances(route)
	placed := make([]domain.PlacedPOI, 0, len(pois))

	for _, poi := range pois {
		p, ok := uc.placePOI(route, cum, poi, stats)
		if !ok {
			continue
		}
		placed = append(placed, p)
	}

	// Детерминированный порядок: по расстоянию вдоль маршрута,
	// при равенстве - по external_id
	sort.Slice(placed, func(i, j int) bool {
		if placed[i].DistanceAlongRouteKm != placed[j].DistanceAlongRouteKm {
			return placed[i].DistanceAlongRouteKm < placed[j].DistanceAlongRouteKm
		}
		return placed[i].ExternalID < placed[j].ExternalID
	})

	return placed, nil
}

// placePOI вычисляет размещение одного POI.
// Возвращает ok=false, если POI отброшен фильтром радиуса релевантности.
func (uc *ProjectorUseCase) placePOI(
	route *domain.RouteGeometry,
	cum []float64,
	poi domain.NormalizedPOI,
	stats *PipelineStats,
) (domain.PlacedPOI, bool) {
	proj, err := geometry.NearestPointOnPolyline(poi.Location, route.Points)
	if err != nil {
		return domain.PlacedPOI{}, false
	}

	if proj.DistanceM > uc.relevanceRadiusM {
		uc.logger.Debug("POI filtered by relevance radius",
			zap.String("external_id", poi.ExternalID),
			zap.Float64("distance_m", proj.DistanceM))
		stats.AddFiltered(1)
		return domain.PlacedPOI{}, false
	}

	segStart := route.Points[proj.SegmentIndex]
	segEnd := route.Points[proj.SegmentIndex+1]
	side := geometry.SideOfRoad(poi.Location, segStart, segEnd, uc.sideCenterThresholdM)

	trail := domain.DebugTrail{
		SegmentWindowStart: maxInt(0, proj.SegmentIndex-1),
		SegmentWindowEnd:   minInt(route.SegmentCount()-1, proj.SegmentIndex+1),
		TieBreakApplied:    proj.TieBreak,
	}

	if proj.TieBreak {
		stats.AddTieBreak()
		// При равных расстояниях фиксируем сторону по соседнему сегменту:
		// если она отличается, оставляем сторону раннего сегмента,
		// но записываем шаг пересчета для аудита
		if proj.SegmentIndex+1 < route.SegmentCount() {
			altSide := geometry.SideOfRoad(
				poi.Location,
				route.Points[proj.SegmentIndex+1],
				route.Points[proj.SegmentIndex+2],
				uc.sideCenterThresholdM,
			)
			if altSide != side {
				trail.Recalculations = append(trail.Recalculations, domain.RecalculationStep{
					Reason:       "tie_break_adjacent_segment_disagrees",
					SegmentIndex: proj.SegmentIndex + 1,
					Side:         altSide,
				})
			}
		}
	}

	// POI заметно дальше от маршрута, чем длина сегмента:
	// вероятно, требуется подъезд через боковую дорогу
	segLen := geometry.DistanceMeters(segStart, segEnd)
	if segLen > 0 && proj.DistanceM > segLen {
		trail.RequiresDetour = true
		junction := proj.Point
		trail.JunctionPoint = &junction
		trail.AccessDistanceM = proj.DistanceM
		stats.AddDetour()
	}

	return domain.PlacedPOI{
		NormalizedPOI:          poi,
		SegmentIndex:           proj.SegmentIndex,
		DistanceAlongRouteKm:   (cum[proj.SegmentIndex] + proj.OffsetM) / 1000.0,
		PerpendicularDistanceM: proj.DistanceM,
		Side:                   side,
		DebugTrail:             trail,
	}, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
