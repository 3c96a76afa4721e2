package service

import (
	"context"
	"sync"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/cache"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/events"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/pricing"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/repository"
)

// mockUserRepo keeps a single user document in memory and mimics the
// conditional-update contract of the mongo implementation.
type mockUserRepo struct {
	m    sync.Mutex
	user *domain.User
	err  error
}

func (r *mockUserRepo) FindByID(context.Context, string) (*domain.User, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.user == nil {
		return nil, repository.ErrUserNotFound
	}
	u := *r.user
	return &u, nil
}

func (r *mockUserRepo) Exists(context.Context, string) (bool, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.user != nil, r.err
}

func (r *mockUserRepo) FindCartLine(_ context.Context, _, productID string) (*domain.CartLine, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, line := range r.user.Cart.Products {
		if line.ProductID == productID {
			l := line
			return &l, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepo) IncrementLineQuantity(_ context.Context, _, productID string, delta int) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.user.Cart.Products {
		if r.user.Cart.Products[i].ProductID == productID {
			r.user.Cart.Products[i].Quantity += delta
			return nil
		}
	}
	return repository.ErrNoChange
}

func (r *mockUserRepo) PushLine(_ context.Context, _ string, line domain.CartLine) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	r.user.Cart.Products = append(r.user.Cart.Products, line)
	return nil
}

func (r *mockUserRepo) PullLine(_ context.Context, _, productID string) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	for i, line := range r.user.Cart.Products {
		if line.ProductID == productID {
			r.user.Cart.Products = append(r.user.Cart.Products[:i], r.user.Cart.Products[i+1:]...)
			return len(r.user.Cart.Products), nil
		}
	}
	return 0, repository.ErrNoChange
}

func (r *mockUserRepo) SetCoupon(_ context.Context, _, couponID string) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.user.Cart.CouponID == couponID {
		return repository.ErrNoChange
	}
	r.user.Cart.CouponID = couponID
	return nil
}

func (r *mockUserRepo) ClearCoupon(context.Context, string) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.user.Cart.CouponID == "" {
		return repository.ErrNoChange
	}
	r.user.Cart.CouponID = ""
	return nil
}

func (r *mockUserRepo) couponID() string {
	r.m.Lock()
	defer r.m.Unlock()
	return r.user.Cart.CouponID
}

func (r *mockUserRepo) line(productID string) *domain.CartLine {
	r.m.Lock()
	defer r.m.Unlock()
	for _, l := range r.user.Cart.Products {
		if l.ProductID == productID {
			line := l
			return &line
		}
	}
	return nil
}

type mockProductRepo struct {
	products map[string]domain.Product
}

func (r *mockProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (r *mockProductRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockCouponRepo struct {
	coupons  map[string]domain.Coupon // keyed by code
	inserted []domain.Coupon
}

func (r *mockCouponRepo) FindByID(_ context.Context, id string) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.ID == id {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, repository.ErrCouponNotFound
}

func (r *mockCouponRepo) FindByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := r.coupons[code]
	if !ok {
		return nil, repository.ErrCouponNotFound
	}
	return &c, nil
}

func (r *mockCouponRepo) Insert(_ context.Context, coupon *domain.Coupon) error {
	r.inserted = append(r.inserted, *coupon)
	return nil
}

// nopCache never hits so every detail read recomputes.
type nopCache struct{}

func (nopCache) Get(context.Context, string) (*pricing.Detail, error) {
	return nil, cache.ErrCacheMiss
}
func (nopCache) Set(context.Context, string, *pricing.Detail) error { return nil }
func (nopCache) Delete(context.Context, string) error               { return nil }

type capturingPublisher struct {
	m      sync.Mutex
	events []events.Event
}

func (p *capturingPublisher) Publish(_ context.Context, e events.Event) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }
