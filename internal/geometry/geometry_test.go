package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/pkg/errors"
)

// один градус широты на сфере радиуса 6371 км
const oneDegreeM = 111194.93

func TestDistanceMeters(t *testing.T) {
	t.Run("one degree of latitude", func(t *testing.T) {
		d := DistanceMeters(
			domain.GeoPoint{Lat: 0, Lon: 0},
			domain.GeoPoint{Lat: 1, Lon: 0},
		)
		assert.InDelta(t, oneDegreeM, d, 1.0)
	})

	t.Run("zero distance", func(t *testing.T) {
		p := domain.GeoPoint{Lat: 41.3851, Lon: 2.1734}
		assert.Equal(t, 0.0, DistanceMeters(p, p))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := domain.GeoPoint{Lat: 41.3851, Lon: 2.1734}
		b := domain.GeoPoint{Lat: 40.4168, Lon: -3.7038}
		assert.InDelta(t, DistanceMeters(a, b), DistanceMeters(b, a), 1e-9)
	})
}

func TestCumulativeDistances(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 0.5, Lon: 0},
		{Lat: 1.0, Lon: 0},
		{Lat: 1.0, Lon: 0.5},
	}

	cum := CumulativeDistances(points)
	require.Len(t, cum, len(points))
	assert.Equal(t, 0.0, cum[0])

	// неубывающая последовательность
	for i := 1; i < len(cum); i++ {
		assert.GreaterOrEqual(t, cum[i], cum[i-1])
	}

	// последний элемент равен сумме попарных расстояний
	sum := 0.0
	for i := 1; i < len(points); i++ {
		sum += DistanceMeters(points[i-1], points[i])
	}
	assert.InDelta(t, sum, cum[len(cum)-1], 1e-9)

	assert.Nil(t, CumulativeDistances(nil))
}

func TestInterpolateAtDistance(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 1, Lon: 0},
		{Lat: 1, Lon: 1},
	}
	cum := CumulativeDistances(points)
	totalKm := cum[len(cum)-1] / 1000.0

	t.Run("zero distance returns route start", func(t *testing.T) {
		assert.Equal(t, points[0], InterpolateAtDistance(points, cum, 0))
	})

	t.Run("negative distance clamps to start", func(t *testing.T) {
		assert.Equal(t, points[0], InterpolateAtDistance(points, cum, -10))
	})

	t.Run("total distance returns route end", func(t *testing.T) {
		assert.Equal(t, points[len(points)-1], InterpolateAtDistance(points, cum, totalKm))
	})

	t.Run("beyond total clamps to end", func(t *testing.T) {
		assert.Equal(t, points[len(points)-1], InterpolateAtDistance(points, cum, totalKm+100))
	})

	t.Run("midpoint of first segment", func(t *testing.T) {
		halfKm := cum[1] / 2000.0
		p := InterpolateAtDistance(points, cum, halfKm)
		assert.InDelta(t, 0.5, p.Lat, 1e-6)
		assert.InDelta(t, 0.0, p.Lon, 1e-9)
	})
}

func TestNearestPointOnPolyline(t *testing.T) {
	t.Run("empty geometry returns sentinel", func(t *testing.T) {
		proj, err := NearestPointOnPolyline(
			domain.GeoPoint{Lat: 1, Lon: 1},
			[]domain.GeoPoint{{Lat: 0, Lon: 0}},
		)
		require.ErrorIs(t, err, errors.ErrEmptyGeometry)
		assert.Equal(t, -1, proj.SegmentIndex)
		assert.True(t, math.IsInf(proj.DistanceM, 1))
	})

	t.Run("point beside first segment", func(t *testing.T) {
		points := []domain.GeoPoint{
			{Lat: 0, Lon: 0},
			{Lat: 1, Lon: 0},
			{Lat: 2, Lon: 0},
		}
		proj, err := NearestPointOnPolyline(domain.GeoPoint{Lat: 0.5, Lon: 0.001}, points)
		require.NoError(t, err)
		assert.Equal(t, 0, proj.SegmentIndex)
		assert.InDelta(t, 0.001*oneDegreeM, proj.DistanceM, 1.0)
		assert.InDelta(t, 0.5, proj.Point.Lat, 1e-6)
		assert.InDelta(t, 0.5*oneDegreeM, proj.OffsetM, 5.0)
	})

	t.Run("point beyond route end projects onto last vertex", func(t *testing.T) {
		points := []domain.GeoPoint{
			{Lat: 0, Lon: 0},
			{Lat: 1, Lon: 0},
		}
		proj, err := NearestPointOnPolyline(domain.GeoPoint{Lat: 1.5, Lon: 0}, points)
		require.NoError(t, err)
		assert.Equal(t, 0, proj.SegmentIndex)
		assert.InDelta(t, 1.0, proj.Point.Lat, 1e-9)
		assert.InDelta(t, 0.5*oneDegreeM, proj.DistanceM, 5.0)
	})

	t.Run("equidistant segments resolve to lower index with tie flag", func(t *testing.T) {
		// угол маршрута: восток, потом север; точка снаружи угла
		// равноудалена от обоих сегментов (ближайшая точка - общая вершина)
		points := []domain.GeoPoint{
			{Lat: 0, Lon: 0},
			{Lat: 0, Lon: 0.001},
			{Lat: 0.001, Lon: 0.001},
		}
		proj, err := NearestPointOnPolyline(domain.GeoPoint{Lat: -0.0002, Lon: 0.0012}, points)
		require.NoError(t, err)
		assert.Equal(t, 0, proj.SegmentIndex)
		assert.True(t, proj.TieBreak)
	})

	t.Run("point exactly on vertex", func(t *testing.T) {
		points := []domain.GeoPoint{
			{Lat: 0, Lon: 0},
			{Lat: 1, Lon: 0},
			{Lat: 2, Lon: 0},
		}
		proj, err := NearestPointOnPolyline(domain.GeoPoint{Lat: 1, Lon: 0}, points)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, proj.DistanceM, 1e-6)
	})
}

func TestSideOfRoad(t *testing.T) {
	// сегмент строго на север по нулевому меридиану
	segStart := domain.GeoPoint{Lat: 0, Lon: 0}
	segEnd := domain.GeoPoint{Lat: 1, Lon: 0}

	t.Run("east of northbound segment is right", func(t *testing.T) {
		poi := domain.GeoPoint{Lat: 0.5, Lon: 0.0001} // ~11.1 м к востоку
		side := SideOfRoad(poi, segStart, segEnd, 10)
		assert.Equal(t, domain.SideRight, side)
	})

	t.Run("west of northbound segment is left", func(t *testing.T) {
		poi := domain.GeoPoint{Lat: 0.5, Lon: -0.0001}
		side := SideOfRoad(poi, segStart, segEnd, 10)
		assert.Equal(t, domain.SideLeft, side)
	})

	t.Run("within threshold is center", func(t *testing.T) {
		// ~11.1 м при пороге по умолчанию 50 м
		poi := domain.GeoPoint{Lat: 0.5, Lon: 0.0001}
		side := SideOfRoad(poi, segStart, segEnd, 50)
		assert.Equal(t, domain.SideCenter, side)
	})

	t.Run("antisymmetric under segment reversal", func(t *testing.T) {
		poi := domain.GeoPoint{Lat: 0.5, Lon: 0.001}
		forward := SideOfRoad(poi, segStart, segEnd, 10)
		backward := SideOfRoad(poi, segEnd, segStart, 10)
		assert.Equal(t, domain.SideRight, forward)
		assert.Equal(t, domain.SideLeft, backward)

		near := domain.GeoPoint{Lat: 0.5, Lon: 0.0001}
		assert.Equal(t, domain.SideCenter, SideOfRoad(near, segStart, segEnd, 50))
		assert.Equal(t, domain.SideCenter, SideOfRoad(near, segEnd, segStart, 50))
	})

	t.Run("point on segment is center", func(t *testing.T) {
		poi := domain.GeoPoint{Lat: 0.5, Lon: 0}
		assert.Equal(t, domain.SideCenter, SideOfRoad(poi, segStart, segEnd, 50))
	})
}
