// Package events publishes cart activity to Kafka for downstream
// consumers (analytics, abandoned-cart jobs). Publishing is best-effort:
// the cart request never fails because a broker is down.
package events

import (
	"context"
	"time"
)

const (
	ItemAdded     = "item_added"
	ItemRemoved   = "item_removed"
	ItemDeleted   = "item_deleted"
	CouponApplied = "coupon_applied"
	CouponRemoved = "coupon_removed"
)

type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id,omitempty"`
	CouponCode string    `json:"coupon_code,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
