package backend

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"past exp", sign(jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), true},
		{"future exp", sign(jwt.MapClaims{"exp": now.Add(time.Minute).Unix()}), false},
		{"no exp", sign(jwt.MapClaims{"sub": "42"}), false},
		{"opaque token", "not-a-jwt", false},
		{"five part JWE", "eyJhbGciOiJBMjU2S1ciLCJlbmMiOiJBMjU2Q0JDLUhTNTEyIn0.a.b.c.d", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tokenExpired(tc.token, now))
		})
	}
}
