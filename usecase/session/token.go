package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/pulsemark/clientcore/domain"
)

// expired reports whether the token carries an exp claim in the past.
// Tokens without parseable claims are treated as live; the backend
// validation call remains the authority.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}

// identityFromToken recovers a best-effort profile from token claims
// for the optimistic restore window before validation settles. Returns
// nil when the token carries no usable subject.
func identityFromToken(token string) *domain.Identity {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	id := domain.Identity{}
	if v, ok := claims["user_id"].(string); ok {
		id.ID = v
	}
	if id.ID == "" {
		if v, ok := claims["sub"].(string); ok {
			id.ID = v
		}
	}
	if id.ID == "" {
		return nil
	}
	if v, ok := claims["name"].(string); ok {
		id.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["is_admin"].(bool); ok {
		id.IsAdmin = v
	}
	return &id
}
