package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/pricing"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/service"
)

// CartAPI is the slice of the cart service the handlers use.
type CartAPI interface {
	AddToCart(ctx context.Context, userID, productID string) (string, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (string, error)
	DeleteFromCart(ctx context.Context, userID, productID string) (string, error)
	ApplyCoupon(ctx context.Context, userID, couponCode string) (*pricing.Detail, string, error)
	RemoveCoupon(ctx context.Context, userID string) (*pricing.Detail, string, error)
	CartDetail(ctx context.Context, userID string) (*pricing.Detail, error)
	CreateCoupon(ctx context.Context, in service.CreateCouponInput) (*domain.Coupon, error)
}

type CartHandler struct {
	carts   CartAPI
	timeout time.Duration
}

func NewCartHandler(carts CartAPI, timeout time.Duration) *CartHandler {
	return &CartHandler{carts: carts, timeout: timeout}
}

type productRequestDTO struct {
	ProductID string `json:"productId"`
}

type couponRequestDTO struct {
	CouponCode string `json:"couponCode"`
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	productID, ok := decodeProductID(w, r)
	if !ok {
		return
	}

	message, err := h.carts.AddToCart(ctx, userID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, EnvelopeData{Message: message})
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	productID, ok := decodeProductID(w, r)
	if !ok {
		return
	}

	message, err := h.carts.RemoveFromCart(ctx, userID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, EnvelopeData{Message: message})
}

func (h *CartHandler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())
	productID, ok := decodeProductID(w, r)
	if !ok {
		return
	}

	message, err := h.carts.DeleteFromCart(ctx, userID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, EnvelopeData{Message: message})
}

func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())

	var req couponRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.CouponCode == "" {
		respondError(w, http.StatusBadRequest, "couponCode is required")
		return
	}

	detail, message, err := h.carts.ApplyCoupon(ctx, userID, req.CouponCode)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, EnvelopeData{Message: message, Cart: detail})
}

func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())

	detail, message, err := h.carts.RemoveCoupon(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, EnvelopeData{Message: message, Cart: detail})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := userIDFromContext(r.Context())

	detail, err := h.carts.CartDetail(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, EnvelopeData{Message: "Cart detail", Cart: detail})
}

func decodeProductID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req productRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required")
		return "", false
	}
	return req.ProductID, true
}
