package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/route-poi-service/internal/domain"
	"github.com/route-poi-service/internal/domain/repository"
)

// Limiter оборачивает ProviderClient и выдерживает минимальный интервал
// между последовательными запросами к одному провайдеру, в том числе
// при конкурентных вызовах. Композиция вместо наследования: лимитер
// можно обернуть вокруг любого адаптера.
type Limiter struct {
	inner       repository.ProviderClient
	minInterval time.Duration

	mu       sync.Mutex
	nextSlot time.Time

	requests atomic.Int64
	waits    atomic.Int64
}

// Wrap оборачивает клиент провайдера лимитером.
// При нулевом интервале клиент возвращается без обертки.
func Wrap(inner repository.ProviderClient, minInterval time.Duration) repository.ProviderClient {
	if minInterval <= 0 {
		return inner
	}
	return &Limiter{
		inner:       inner,
		minInterval: minInterval,
	}
}

// Name возвращает идентификатор обернутого провайдера
func (l *Limiter) Name() string {
	return l.inner.Name()
}

// SearchPOIs ждет свой слот и делегирует запрос обернутому клиенту
func (l *Limiter) SearchPOIs(ctx context.Context, center domain.GeoPoint, radiusM float64, category string) ([]domain.ParseOutcome, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	l.requests.Add(1)
	return l.inner.SearchPOIs(ctx, center, radiusM, category)
}

// wait резервирует слот запроса и ждет его наступления.
// Слоты выдаются под мьютексом, поэтому конкурентные вызовы
// выстраиваются в очередь с шагом minInterval.
func (l *Limiter) wait(ctx context.Context) error {
	now := time.Now()

	l.mu.Lock()
	slot := l.nextSlot
	if slot.Before(now) {
		slot = now
	}
	l.nextSlot = slot.Add(l.minInterval)
	l.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return nil
	}

	l.waits.Add(1)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Stats возвращает количество выполненных запросов и ожиданий
func (l *Limiter) Stats() (requests, waits int64) {
	return l.requests.Load(), l.waits.Load()
}
