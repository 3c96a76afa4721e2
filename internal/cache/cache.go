package cache

import (
	"context"
	"errors"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/pricing"
)

// DetailCache holds computed cart pricing details per user. Mutating cart
// operations invalidate the entry; reads fall back to recomputation on a
// miss.
type DetailCache interface {
	Get(ctx context.Context, userID string) (*pricing.Detail, error)
	Set(ctx context.Context, userID string, detail *pricing.Detail) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
