package cache

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/pricing"
)

// BreakerCache wraps a DetailCache with a circuit breaker so a struggling
// Redis does not stay in the request hot path. While the breaker is open,
// Get reports a cache miss and Set/Delete become no-ops; callers already
// treat the cache as best-effort.
type BreakerCache struct {
	inner DetailCache
	cb    *gobreaker.CircuitBreaker[*pricing.Detail]
}

func NewBreakerCache(inner DetailCache) *BreakerCache {
	settings := gobreaker.Settings{
		Name:    "detail-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerCache{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[*pricing.Detail](settings),
	}
}

func (b *BreakerCache) Get(ctx context.Context, userID string) (*pricing.Detail, error) {
	detail, err := b.cb.Execute(func() (*pricing.Detail, error) {
		d, errGet := b.inner.Get(ctx, userID)
		if errors.Is(errGet, ErrCacheMiss) {
			// A miss is a normal outcome, it must not trip the breaker.
			return nil, nil
		}
		return d, errGet
	})
	if err != nil {
		if breakerOpen(err) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	if detail == nil {
		return nil, ErrCacheMiss
	}
	return detail, nil
}

func (b *BreakerCache) Set(ctx context.Context, userID string, detail *pricing.Detail) error {
	_, err := b.cb.Execute(func() (*pricing.Detail, error) {
		return nil, b.inner.Set(ctx, userID, detail)
	})
	if breakerOpen(err) {
		return nil
	}
	return err
}

func (b *BreakerCache) Delete(ctx context.Context, userID string) error {
	_, err := b.cb.Execute(func() (*pricing.Detail, error) {
		return nil, b.inner.Delete(ctx, userID)
	})
	if breakerOpen(err) {
		return nil
	}
	return err
}

func breakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
