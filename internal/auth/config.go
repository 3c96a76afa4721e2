// Package auth issues and verifies the session tokens: a short-lived
// access token and a long-lived refresh token, both JWTs carried in
// HMAC-signed cookies.
package auth

import (
	"errors"
	"time"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"

	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 365 * 24 * time.Hour
)

var (
	ErrNoSession    = errors.New("no session token")
	ErrInvalidToken = errors.New("invalid session token")
	ErrUserGone     = errors.New("token user no longer exists")
)

// Config carries the signing material, constructed once at startup and
// passed in explicitly.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	CookieSecret  string
	// Env toggles the Secure cookie attribute; only "production" sets it.
	Env string
}

func (c Config) secureCookies() bool {
	return c.Env == "production"
}
