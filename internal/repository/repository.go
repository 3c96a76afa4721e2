package repository

import (
	"context"
	"errors"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCouponNotFound  = errors.New("coupon not found")

	// ErrNoChange means a conditional update matched or modified nothing.
	// Callers map it to the appropriate domain error; there is no retry.
	ErrNoChange = errors.New("update modified no documents")
)

// UserRepository covers the user documents and the cart embedded in them.
// Consumers define this interface, not the MongoDB implementation.
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	Exists(ctx context.Context, userID string) (bool, error)

	// FindCartLine returns the cart line for productID, or nil when the
	// cart has no such line.
	FindCartLine(ctx context.Context, userID, productID string) (*domain.CartLine, error)

	// IncrementLineQuantity adds delta to an existing line's quantity.
	IncrementLineQuantity(ctx context.Context, userID, productID string, delta int) error

	// PushLine appends a new line to the cart.
	PushLine(ctx context.Context, userID string, line domain.CartLine) error

	// PullLine removes the line for productID and returns how many lines
	// remain, so the caller can clear the coupon when the cart empties.
	PullLine(ctx context.Context, userID, productID string) (remaining int, err error)

	SetCoupon(ctx context.Context, userID, couponID string) error
	ClearCoupon(ctx context.Context, userID string) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (*domain.Product, error)
	FindByIDs(ctx context.Context, productIDs []string) ([]domain.Product, error)
}

type CouponRepository interface {
	FindByID(ctx context.Context, couponID string) (*domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (*domain.Coupon, error)
	Insert(ctx context.Context, coupon *domain.Coupon) error
}
