package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExpired(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		token   string
		expired bool
	}{
		{
			name:    "live token",
			token:   signedToken(t, jwt.MapClaims{"sub": "1", "exp": now.Add(time.Hour).Unix()}),
			expired: false,
		},
		{
			name:    "expired token",
			token:   signedToken(t, jwt.MapClaims{"sub": "1", "exp": now.Add(-time.Hour).Unix()}),
			expired: true,
		},
		{
			name:    "no exp claim",
			token:   signedToken(t, jwt.MapClaims{"sub": "1"}),
			expired: false,
		},
		{
			name:    "opaque token",
			token:   "not-a-jwt",
			expired: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := expired(tc.token, now); got != tc.expired {
				t.Errorf("expired() = %v, want %v", got, tc.expired)
			}
		})
	}
}

func TestIdentityFromToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"user_id":  "1",
		"name":     "Ann",
		"email":    "a@b.com",
		"is_admin": true,
	})
	id := identityFromToken(token)
	if id == nil {
		t.Fatal("identityFromToken returned nil for claim-bearing token")
	}
	if id.ID != "1" || id.Name != "Ann" || id.Email != "a@b.com" || !id.IsAdmin {
		t.Errorf("identity = %+v", id)
	}
}

func TestIdentityFromTokenSubFallback(t *testing.T) {
	id := identityFromToken(signedToken(t, jwt.MapClaims{"sub": "42"}))
	if id == nil || id.ID != "42" {
		t.Errorf("identity = %+v, want ID 42 from sub claim", id)
	}
}

func TestIdentityFromTokenUnusable(t *testing.T) {
	if id := identityFromToken("not-a-jwt"); id != nil {
		t.Errorf("identity = %+v for opaque token, want nil", id)
	}
	if id := identityFromToken(signedToken(t, jwt.MapClaims{"name": "Ann"})); id != nil {
		t.Errorf("identity = %+v without subject, want nil", id)
	}
}
