package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the access token carries an exp claim in the past.
// The signature is not verified: the client holds no key material, so the
// server stays the authority on validity. The answer is only a hint used to
// discard stale persisted tokens instead of presenting them.
func Expired(tokenString string, now time.Time) (bool, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return false, fmt.Errorf("failed to parse access token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return false, nil
	}

	return claims.ExpiresAt.Before(now), nil
}
