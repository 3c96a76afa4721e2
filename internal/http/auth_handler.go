package http

import (
	"net/http"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/auth"
)

type AuthHandler struct {
	tokens *auth.Tokens
}

func NewAuthHandler(tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Refresh verifies the refresh cookie and rotates both session cookies.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, err := h.tokens.VerifyRefreshToken(r.Context(), r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	access, err := h.tokens.IssueAccessToken(userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	refresh, err := h.tokens.IssueRefreshToken(userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.tokens.SetAccessCookie(w, access)
	h.tokens.SetRefreshCookie(w, refresh)

	respondData(w, http.StatusOK, EnvelopeData{Message: "Session refreshed"})
}
