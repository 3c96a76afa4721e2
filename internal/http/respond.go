package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/auth"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/pricing"
	"github.com/seyedali-rafazi/urbam-state-backend/internal/service"
)

// Envelope is the response shape every endpoint uses:
// {statusCode, data: {message, cart?}}.
type Envelope struct {
	StatusCode int          `json:"statusCode"`
	Data       EnvelopeData `json:"data"`
}

type EnvelopeData struct {
	Message string          `json:"message"`
	Cart    *pricing.Detail `json:"cart,omitempty"`
	Coupon  interface{}     `json:"coupon,omitempty"`
}

type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func respondData(w http.ResponseWriter, status int, data EnvelopeData) {
	respondJSON(w, status, Envelope{StatusCode: status, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{StatusCode: status, Error: message})
}

// handleServiceError maps domain and auth errors to HTTP statuses.
func handleServiceError(w http.ResponseWriter, err error) {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		respondError(w, statusForKind(domainErr.Kind), domainErr.Message)
		return
	}

	switch {
	case errors.Is(err, auth.ErrNoSession):
		respondError(w, http.StatusUnauthorized, "Please log in to your account")
	case errors.Is(err, auth.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "Please log in to your account")
	case errors.Is(err, auth.ErrUserGone):
		respondError(w, http.StatusUnauthorized, "Account not found")
	default:
		log.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindBadRequest:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
