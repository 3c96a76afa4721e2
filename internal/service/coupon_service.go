package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
)

// CreateCouponInput is the admin coupon-creation payload. Amount and
// UsageLimit are pointers so a missing field is distinguishable from zero.
type CreateCouponInput struct {
	Code       string     `json:"code"`
	Type       string     `json:"type"`
	Amount     *float64   `json:"amount"`
	UsageLimit *int       `json:"usageLimit"`
	ExpireDate *time.Time `json:"expireDate"`
	ProductIDs []string   `json:"productIds"`
}

func (in CreateCouponInput) validate() error {
	if len(in.Code) < 5 || len(in.Code) > 30 {
		return badRequest("Invalid discount code")
	}
	if !domain.CouponType(in.Type).Valid() {
		return badRequest("Please enter a valid discount type")
	}
	if in.Amount == nil {
		return badRequest("Please enter a valid discount amount")
	}
	if in.UsageLimit == nil {
		return badRequest("Please enter a valid usage limit")
	}
	return nil
}

// CreateCoupon validates and stores a new coupon. Coupons start active
// with a zero usage count.
func (s *CartService) CreateCoupon(ctx context.Context, in CreateCouponInput) (*domain.Coupon, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	coupon := &domain.Coupon{
		ID:         uuid.NewString(),
		Code:       in.Code,
		Type:       domain.CouponType(in.Type),
		Amount:     *in.Amount,
		UsageLimit: *in.UsageLimit,
		IsActive:   true,
		ExpireDate: in.ExpireDate,
		ProductIDs: in.ProductIDs,
	}

	if err := s.coupons.Insert(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}
