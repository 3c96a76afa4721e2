// Package pricing computes the cart pricing detail: per-product effective
// prices after coupon or self-discount resolution, plus totals.
package pricing

import (
	"math"
	"time"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
)

// CouponView is the minimal public view of an applied coupon.
type CouponView struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// PricedProduct is a cart line joined with its product record and the
// computed discounted price. OffPrice is nil when no discount applies.
type PricedProduct struct {
	domain.Product
	Quantity int      `json:"quantity"`
	OffPrice *float64 `json:"offPrice,omitempty"`
}

type PayDetail struct {
	TotalPrice    float64 `json:"totalPrice"`
	TotalDiscount float64 `json:"totalDiscount"`
}

// Detail is the assembled pricing view returned to callers.
type Detail struct {
	UserName  string          `json:"name"`
	Coupon    *CouponView     `json:"coupon"`
	Products  []PricedProduct `json:"products"`
	PayDetail PayDetail       `json:"payDetail"`
}

// Compute joins cart lines with their product records, resolves the
// discounted price of every product and sums the totals.
//
// A coupon that is inactive, over its usage limit or past its expiry is
// treated as absent: the detail carries a nil coupon and no coupon
// discount is applied. A product with its own discount is never touched
// by a coupon. Fixed-amount coupons never push a price below zero; when
// the amount exceeds the price the product stays unmodified. Percent
// coupons truncate toward zero, dropping fractional cents.
func Compute(userName string, lines []domain.CartLine, products []domain.Product, coupon *domain.Coupon, now time.Time) Detail {
	detail := Detail{
		UserName: userName,
		Products: make([]PricedProduct, 0, len(products)),
	}

	applied := coupon != nil && couponUsable(*coupon, now)
	if applied {
		detail.Coupon = &CouponView{ID: coupon.ID, Code: coupon.Code}
	}

	quantities := make(map[string]int, len(lines))
	for _, line := range lines {
		quantities[line.ProductID] = line.Quantity
	}

	for _, p := range products {
		priced := PricedProduct{
			Product:  p,
			Quantity: quantities[p.ID],
		}
		if off, ok := offPrice(p, coupon, applied); ok {
			priced.OffPrice = &off
		}
		detail.Products = append(detail.Products, priced)
	}

	detail.PayDetail = totals(detail.Products)
	return detail
}

func couponUsable(c domain.Coupon, now time.Time) bool {
	return c.IsActive && !c.UsageExhausted() && !c.Expired(now)
}

// offPrice resolves the effective discounted price of a single product,
// or reports that the product stays unmodified.
func offPrice(p domain.Product, coupon *domain.Coupon, applied bool) (float64, bool) {
	if p.Discount > 0 {
		// Self-discount takes precedence over any coupon.
		return 0, false
	}
	if !applied || !coupon.AppliesTo(p.ID) {
		return 0, false
	}

	switch coupon.Type {
	case domain.CouponFixedProduct:
		if p.Price < coupon.Amount {
			return 0, false
		}
		return p.Price - coupon.Amount, true
	case domain.CouponPercent:
		return math.Trunc(p.Price * (1 - coupon.Amount/100)), true
	default:
		return 0, false
	}
}

// totals sums the pay detail with 0 defaults for missing operands: a nil
// off price contributes 0, a product absent from the cart lines counts
// with quantity 0.
func totals(products []PricedProduct) PayDetail {
	var d PayDetail
	for _, p := range products {
		off := 0.0
		if p.OffPrice != nil {
			off = *p.OffPrice
		}
		d.TotalPrice += off * float64(p.Quantity)
		d.TotalDiscount += p.Price - off
	}
	return d
}
