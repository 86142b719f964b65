// Package auth implements the cookie-carried identity tokens and password
// hashing. Session tokens are signed JWTs; the original deployment shipped a
// plain base64 payload, which let any cookie holder mint admin sessions, so
// tokens are signed here. Decoding still fails open: a bad token is an
// anonymous caller, never an error.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie carries the identity token for 7 days.
	SessionCookie = "session"
	// TrackingCookie marks a recent successful public lookup for 30 minutes.
	TrackingCookie = "tracking_access"

	// SessionTTL is the session cookie and token lifetime.
	SessionTTL = 7 * 24 * time.Hour
	// TrackingTTL is the tracking access token lifetime.
	TrackingTTL = 30 * time.Minute
)

// Principal identifies the caller of a request. A nil *Principal is an
// anonymous caller.
type Principal struct {
	UserID  string
	Email   string
	IsAdmin bool
}

type sessionClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

type trackingClaims struct {
	TrackingNumber string `json:"trackingNumber"`
	jwt.RegisteredClaims
}

// CreateSessionToken mints a signed session token valid for SessionTTL.
func CreateSessionToken(userID, email string, isAdmin bool, secret string) (string, error) {
	claims := &sessionClaims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken parses a session token. It returns nil for anything
// that does not verify: malformed input, a bad signature, or expiry.
func ValidateSessionToken(token, secret string) *Principal {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}
	return &Principal{UserID: claims.UserID, Email: claims.Email, IsAdmin: claims.IsAdmin}
}

// CreateTrackingToken mints the short-lived token set after a successful
// public tracking lookup.
func CreateTrackingToken(trackingNumber, secret string) (string, error) {
	claims := &trackingClaims{
		TrackingNumber: trackingNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TrackingTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SessionFromCookieHeader extracts the session cookie from a raw Cookie
// header and decodes it. Any missing or invalid piece yields anonymous.
func SessionFromCookieHeader(header, secret string) *Principal {
	if header == "" {
		return nil
	}
	for _, part := range strings.Split(header, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if found && name == SessionCookie {
			return ValidateSessionToken(value, secret)
		}
	}
	return nil
}
