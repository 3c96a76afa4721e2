package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter assembles the HTTP surface: cart operations behind the auth
// middleware, the refresh endpoint and the admin coupon endpoint.
func NewRouter(carts CartAPI, authn Authenticator, authHandler *AuthHandler, log zerolog.Logger, requestTimeout time.Duration) http.Handler {
	cartHandler := NewCartHandler(carts, requestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/refresh", authHandler.Refresh)

	r.Route("/cart", func(r chi.Router) {
		r.Use(AuthMiddleware(authn))
		r.Get("/", cartHandler.GetCart)
		r.Post("/add", cartHandler.AddToCart)
		r.Post("/remove", cartHandler.RemoveFromCart)
		r.Post("/delete", cartHandler.DeleteFromCart)
		r.Post("/coupon", cartHandler.ApplyCoupon)
		r.Delete("/coupon", cartHandler.RemoveCoupon)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(AuthMiddleware(authn))
		r.Post("/coupons", cartHandler.CreateCoupon)
	})

	return r
}
