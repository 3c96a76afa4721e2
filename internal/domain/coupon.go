package domain

import "time"

type CouponType string

const (
	CouponFixedProduct CouponType = "fixedProduct"
	CouponPercent      CouponType = "percent"
)

func (t CouponType) Valid() bool {
	return t == CouponFixedProduct || t == CouponPercent
}

type Coupon struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	Code       string     `bson:"code" json:"code"`
	Type       CouponType `bson:"type" json:"type"`
	Amount     float64    `bson:"amount" json:"amount"`
	UsageLimit int        `bson:"usageLimit" json:"usageLimit"`
	UsageCount int        `bson:"usageCount" json:"usageCount"`
	IsActive   bool       `bson:"isActive" json:"isActive"`
	ExpireDate *time.Time `bson:"expireDate,omitempty" json:"expireDate,omitempty"`
	ProductIDs []string   `bson:"productIds" json:"productIds"`
}

// Expired reports whether the coupon's expiry has passed. A coupon without
// an expire date never expires.
func (c Coupon) Expired(now time.Time) bool {
	return c.ExpireDate != nil && c.ExpireDate.Before(now)
}

// UsageExhausted reports whether the usage limit has been reached.
func (c Coupon) UsageExhausted() bool {
	return c.UsageCount >= c.UsageLimit
}

// AppliesTo reports whether productID is in the coupon's eligible set.
func (c Coupon) AppliesTo(productID string) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
