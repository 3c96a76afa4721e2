package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/cache"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/events"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/pricing"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/repository"
)

type CartService struct {
	users     repository.UserRepository
	products  repository.ProductRepository
	coupons   repository.CouponRepository
	cache     cache.DetailCache
	publisher events.Publisher
	log       zerolog.Logger
	sfg       singleflight.Group // Prevents cache stampede on detail reads
	now       func() time.Time
}

func NewCartService(
	users repository.UserRepository,
	products repository.ProductRepository,
	coupons repository.CouponRepository,
	detailCache cache.DetailCache,
	publisher events.Publisher,
	log zerolog.Logger,
) *CartService {
	return &CartService{
		users:     users,
		products:  products,
		coupons:   coupons,
		cache:     detailCache,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// AddToCart increments the line for productID or appends a new one with
// quantity 1. Returns the confirmation message naming the product.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string) (string, error) {
	product, err := s.checkExistProduct(ctx, productID)
	if err != nil {
		return "", err
	}

	line, err := s.users.FindCartLine(ctx, userID, productID)
	if err != nil {
		return "", err
	}

	if line != nil {
		err = s.users.IncrementLineQuantity(ctx, userID, productID, 1)
	} else {
		err = s.users.PushLine(ctx, userID, domain.CartLine{ProductID: productID, Quantity: 1})
	}
	if errors.Is(err, repository.ErrNoChange) {
		return "", storeWriteFailed("Product was not added to cart")
	}
	if err != nil {
		return "", err
	}

	s.invalidateDetail(userID)
	s.publish(events.Event{Type: events.ItemAdded, UserID: userID, ProductID: productID})

	return fmt.Sprintf("Added to cart: %s", product.Title), nil
}

// RemoveFromCart decrements the line's quantity, or removes the line when
// only one remains. Emptying the cart clears any applied coupon.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) (string, error) {
	product, err := s.checkExistProduct(ctx, productID)
	if err != nil {
		return "", err
	}

	line, err := s.users.FindCartLine(ctx, userID, productID)
	if err != nil {
		return "", err
	}
	if line == nil {
		return "", badRequest(fmt.Sprintf("%s is not in your cart", product.Title))
	}

	var message string
	if line.Quantity > 1 {
		if err := s.users.IncrementLineQuantity(ctx, userID, productID, -1); err != nil {
			if errors.Is(err, repository.ErrNoChange) {
				return "", storeWriteFailed("Product was not reduced from cart")
			}
			return "", err
		}
		message = "One quantity of the product was removed from the cart"
	} else {
		if err := s.pullLine(ctx, userID, productID); err != nil {
			return "", err
		}
		message = "Product was removed from the cart"
	}

	s.invalidateDetail(userID)
	s.publish(events.Event{Type: events.ItemRemoved, UserID: userID, ProductID: productID})

	return fmt.Sprintf("%s %s", product.Title, message), nil
}

// DeleteFromCart removes the line regardless of quantity. Emptying the
// cart clears any applied coupon.
func (s *CartService) DeleteFromCart(ctx context.Context, userID, productID string) (string, error) {
	product, err := s.checkExistProduct(ctx, productID)
	if err != nil {
		return "", err
	}

	line, err := s.users.FindCartLine(ctx, userID, productID)
	if err != nil {
		return "", err
	}
	if line == nil {
		return "", badRequest(fmt.Sprintf("%s is not in your cart", product.Title))
	}

	if err := s.pullLine(ctx, userID, productID); err != nil {
		return "", err
	}

	s.invalidateDetail(userID)
	s.publish(events.Event{Type: events.ItemDeleted, UserID: userID, ProductID: productID})

	return fmt.Sprintf("%s Product was removed from the cart", product.Title), nil
}

// ApplyCoupon validates the coupon against the user's cart and stores the
// reference, then returns the recomputed pricing detail.
func (s *CartService) ApplyCoupon(ctx context.Context, userID, couponCode string) (*pricing.Detail, string, error) {
	coupon, err := s.coupons.FindByCode(ctx, couponCode)
	if errors.Is(err, repository.ErrCouponNotFound) {
		return nil, "", badRequest("The entered coupon code does not exist")
	}
	if err != nil {
		return nil, "", err
	}

	if coupon.UsageExhausted() {
		return nil, "", badRequest("Coupon code usage limit has been reached")
	}
	if coupon.Expired(s.now()) {
		return nil, "", badRequest("Coupon code has expired")
	}
	if !coupon.IsActive {
		return nil, "", badRequest("Coupon code is not active")
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", notFound("Account not found")
	}
	if err != nil {
		return nil, "", err
	}

	applies := false
	for _, id := range coupon.ProductIDs {
		if user.Cart.HasProduct(id) {
			applies = true
			break
		}
	}
	if !applies {
		return nil, "", badRequest("Coupon code does not apply to any of the products in your cart")
	}

	if err := s.users.SetCoupon(ctx, userID, coupon.ID); err != nil {
		if errors.Is(err, repository.ErrNoChange) {
			return nil, "", storeWriteFailed("Coupon code was not applied")
		}
		return nil, "", err
	}

	s.invalidateDetail(userID)
	s.publish(events.Event{Type: events.CouponApplied, UserID: userID, CouponCode: coupon.Code})

	detail, err := s.CartDetail(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	return detail, "Coupon code was successfully applied", nil
}

// RemoveCoupon clears the cart's coupon reference and returns the
// recomputed pricing detail.
func (s *CartService) RemoveCoupon(ctx context.Context, userID string) (*pricing.Detail, string, error) {
	if err := s.users.ClearCoupon(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNoChange) {
			return nil, "", storeWriteFailed("Coupon code was not removed")
		}
		return nil, "", err
	}

	s.invalidateDetail(userID)
	s.publish(events.Event{Type: events.CouponRemoved, UserID: userID})

	detail, err := s.CartDetail(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	return detail, "Coupon code was removed", nil
}

// CartDetail produces the user's pricing detail, serving from cache when
// possible. Concurrent misses for the same user collapse into one
// computation.
func (s *CartService) CartDetail(ctx context.Context, userID string) (*pricing.Detail, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		detail, err := s.cache.Get(ctx, userID)
		if err == nil {
			return detail, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("cache get failed")
		}

		detail, err = s.computeDetail(ctx, userID)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), userID, detail); errSet != nil {
				s.log.Warn().Err(errSet).Str("user_id", userID).Msg("cache set failed")
			}
		}()

		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pricing.Detail), nil
}

func (s *CartService) computeDetail(ctx context.Context, userID string) (*pricing.Detail, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, notFound("Account not found")
	}
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, user.Cart.ProductIDs())
	if err != nil {
		return nil, err
	}

	var coupon *domain.Coupon
	if user.Cart.CouponID != "" {
		coupon, err = s.coupons.FindByID(ctx, user.Cart.CouponID)
		if errors.Is(err, repository.ErrCouponNotFound) {
			// A dangling reference prices the cart as if no coupon were set.
			coupon = nil
		} else if err != nil {
			return nil, err
		}
	}

	detail := pricing.Compute(user.Name, user.Cart.Products, products, coupon, s.now())
	return &detail, nil
}

// pullLine removes the line and clears the coupon when the cart empties.
// Coupon clearing is best-effort: the line is already gone and there is no
// rollback, so a failure here is logged, not surfaced.
func (s *CartService) pullLine(ctx context.Context, userID, productID string) error {
	remaining, err := s.users.PullLine(ctx, userID, productID)
	if errors.Is(err, repository.ErrNoChange) {
		return storeWriteFailed("Product was not removed from cart")
	}
	if err != nil {
		return err
	}

	if remaining == 0 {
		err := s.users.ClearCoupon(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNoChange) {
			s.log.Error().Err(err).Str("user_id", userID).Msg("failed to clear coupon from emptied cart")
		}
	}
	return nil
}

func (s *CartService) checkExistProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, notFound("Product with these specifications was not found")
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CartService) invalidateDetail(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cache invalidate failed")
	}
}

// publish sends a cart event without blocking the request.
func (s *CartService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	event.At = s.now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("type", event.Type).Msg("failed to publish cart event")
		}
	}()
}
