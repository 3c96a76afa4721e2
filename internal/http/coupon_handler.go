package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/service"
)

// CreateCoupon is the admin-facing coupon creation endpoint.
func (h *CartHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var in service.CreateCouponInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	coupon, err := h.carts.CreateCoupon(ctx, in)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, EnvelopeData{
		Message: "Coupon was successfully created",
		Coupon:  coupon,
	})
}
