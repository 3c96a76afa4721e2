package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserFinder confirms a token's subject still exists. Consumers define
// the interface; the repository satisfies it.
type UserFinder interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Tokens struct {
	cfg   Config
	users UserFinder
	now   func() time.Time
}

func NewTokens(cfg Config, users UserFinder) *Tokens {
	return &Tokens{cfg: cfg, users: users, now: time.Now}
}

// IssueAccessToken signs a 24-hour token bound to userID.
func (t *Tokens) IssueAccessToken(userID string) (string, error) {
	return t.sign(userID, AccessTokenTTL, t.cfg.AccessSecret)
}

// IssueRefreshToken signs a one-year token bound to userID.
func (t *Tokens) IssueRefreshToken(userID string) (string, error) {
	return t.sign(userID, RefreshTokenTTL, t.cfg.RefreshSecret)
}

func (t *Tokens) sign(userID string, ttl time.Duration, secret string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken returns the user id an access token was issued for.
func (t *Tokens) VerifyAccessToken(token string) (string, error) {
	return t.verify(token, t.cfg.AccessSecret)
}

func (t *Tokens) verify(token, secret string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// SetAccessCookie writes the signed access-token cookie.
func (t *Tokens) SetAccessCookie(w http.ResponseWriter, token string) {
	t.setCookie(w, AccessCookieName, token, AccessTokenTTL)
}

// SetRefreshCookie writes the signed refresh-token cookie.
func (t *Tokens) SetRefreshCookie(w http.ResponseWriter, token string) {
	t.setCookie(w, RefreshCookieName, token, RefreshTokenTTL)
}

func (t *Tokens) setCookie(w http.ResponseWriter, name, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    SignCookieValue(token, t.cfg.CookieSecret),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
		Secure:   t.cfg.secureCookies(),
	})
}

// UserIDFromRequest authenticates a request by its access-token cookie,
// falling back to a bearer Authorization header.
func (t *Tokens) UserIDFromRequest(r *http.Request) (string, error) {
	raw, err := t.cookieValue(r, AccessCookieName)
	if err != nil {
		if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
			raw = auth[7:]
		} else {
			return "", ErrNoSession
		}
	}
	return t.VerifyAccessToken(raw)
}

// VerifyRefreshToken unsigns the refresh cookie, verifies the JWT and
// confirms the user it references still exists.
func (t *Tokens) VerifyRefreshToken(ctx context.Context, r *http.Request) (string, error) {
	raw, err := t.cookieValue(r, RefreshCookieName)
	if err != nil {
		return "", err
	}

	userID, err := t.verify(raw, t.cfg.RefreshSecret)
	if err != nil {
		return "", err
	}

	exists, err := t.users.Exists(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to check token user: %w", err)
	}
	if !exists {
		return "", ErrUserGone
	}
	return userID, nil
}

func (t *Tokens) cookieValue(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", ErrNoSession
	}
	value, ok := UnsignCookieValue(cookie.Value, t.cfg.CookieSecret)
	if !ok {
		return "", ErrInvalidToken
	}
	return value, nil
}
