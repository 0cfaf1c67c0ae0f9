package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-poi-service/internal/domain"
)

// stubClient считает вызовы и отдает пустой результат
type stubClient struct {
	mu    sync.Mutex
	calls []time.Time
}

func (s *stubClient) Name() string { return domain.ProviderOSM }

func (s *stubClient) SearchPOIs(ctx context.Context, center domain.GeoPoint, radiusM float64, category string) ([]domain.ParseOutcome, error) {
	s.mu.Lock()
	s.calls = append(s.calls, time.Now())
	s.mu.Unlock()
	return nil, nil
}

func TestLimiter_Wrap(t *testing.T) {
	t.Run("zero interval returns client unwrapped", func(t *testing.T) {
		inner := &stubClient{}
		assert.Same(t, inner, Wrap(inner, 0))
	})

	t.Run("positive interval wraps the client", func(t *testing.T) {
		inner := &stubClient{}
		wrapped := Wrap(inner, time.Millisecond)
		require.NotSame(t, inner, wrapped)
		assert.Equal(t, domain.ProviderOSM, wrapped.Name())
	})
}

func TestLimiter_SearchPOIs(t *testing.T) {
	t.Run("sequential calls keep minimal interval", func(t *testing.T) {
		inner := &stubClient{}
		interval := 30 * time.Millisecond
		wrapped := Wrap(inner, interval)

		ctx := context.Background()
		center := domain.GeoPoint{Lat: 0, Lon: 0}
		for i := 0; i < 3; i++ {
			_, err := wrapped.SearchPOIs(ctx, center, 1000, domain.CategoryGasStation)
			require.NoError(t, err)
		}

		require.Len(t, inner.calls, 3)
		for i := 1; i < len(inner.calls); i++ {
			gap := inner.calls[i].Sub(inner.calls[i-1])
			assert.GreaterOrEqual(t, gap, interval-5*time.Millisecond,
				"calls %d and %d too close", i-1, i)
		}
	})

	t.Run("concurrent callers are serialized", func(t *testing.T) {
		inner := &stubClient{}
		interval := 20 * time.Millisecond
		wrapped := Wrap(inner, interval)

		start := time.Now()
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := wrapped.SearchPOIs(context.Background(), domain.GeoPoint{}, 1000, domain.CategoryHotel)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		// 4 запроса с шагом 20 мс: минимум 3 интервала суммарно
		assert.GreaterOrEqual(t, time.Since(start), 3*interval-5*time.Millisecond)
		require.Len(t, inner.calls, 4)

		limiter, ok := wrapped.(*Limiter)
		require.True(t, ok)
		requests, waits := limiter.Stats()
		assert.EqualValues(t, 4, requests)
		assert.GreaterOrEqual(t, waits, int64(3))
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		inner := &stubClient{}
		wrapped := Wrap(inner, time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		// первый вызов занимает слот, второй встанет в очередь на минуту
		_, err := wrapped.SearchPOIs(ctx, domain.GeoPoint{}, 1000, domain.CategoryCamping)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() {
			_, err := wrapped.SearchPOIs(ctx, domain.GeoPoint{}, 1000, domain.CategoryCamping)
			done <- err
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("canceled call did not return")
		}

		require.Len(t, inner.calls, 1)
	})
}
