package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Signed cookie format: "s:<value>.<base64 hmac-sha256>", with base64
// padding stripped. Kept compatible with express cookie-parser so tokens
// survive a mixed deployment.

const signedPrefix = "s:"

func SignCookieValue(value, secret string) string {
	return signedPrefix + value + "." + cookieSignature(value, secret)
}

// UnsignCookieValue validates the signature and returns the embedded
// value. Reports false for unsigned or tampered values.
func UnsignCookieValue(signed, secret string) (string, bool) {
	if !strings.HasPrefix(signed, signedPrefix) {
		return "", false
	}
	rest := signed[len(signedPrefix):]

	dot := strings.LastIndexByte(rest, '.')
	if dot < 0 {
		return "", false
	}
	value, sig := rest[:dot], rest[dot+1:]

	expected := cookieSignature(value, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return value, true
}

func cookieSignature(value, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return strings.TrimRight(sig, "=")
}
