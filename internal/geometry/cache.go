package geometry

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/route-poi-service/internal/domain"
)

// RouteCache кэширует таблицы накопленных расстояний по геометрии маршрута.
// Счетчики hit/miss явные, без глобального состояния.
type RouteCache struct {
	cache  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRouteCache создает новый RouteCache с заданным TTL
func NewRouteCache(ttl, cleanupInterval time.Duration) *RouteCache {
	return &RouteCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// CumulativeDistances возвращает таблицу накопленных расстояний для маршрута,
// вычисляя ее при промахе кэша
func (c *RouteCache) CumulativeDistances(route *domain.RouteGeometry) []float64 {
	key := routeKey(route.Points)

	if cached, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return cached.([]float64)
	}

	c.misses.Add(1)
	cum := CumulativeDistances(route.Points)
	c.cache.Set(key, cum, gocache.DefaultExpiration)
	return cum
}

// Stats возвращает счетчики попаданий и промахов кэша
func (c *RouteCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// routeKey строит ключ кэша как FNV-хэш координат маршрута
func routeKey(points []domain.GeoPoint) string {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(p.Lat))
		h.Write(buf)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(p.Lon))
		h.Write(buf)
	}
	return fmt.Sprintf("route:%d:%x", len(points), h.Sum64())
}
