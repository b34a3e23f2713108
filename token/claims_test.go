package token_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/logitrans/navigo-go/token"
	"github.com/stretchr/testify/require"
)

func forgeToken(t *testing.T, payload map[string]any) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(body) + "." + enc.EncodeToString([]byte("sig"))
}

func TestDecodeValidToken(t *testing.T) {
	raw := forgeToken(t, map[string]any{
		"sub":       "user-1",
		"email":     "ana.petrovic@example.com",
		"firstName": "Ana",
		"lastName":  "Petrovic",
		"role":      "CompanyUser",
		"exp":       float64(1900000000),
		"iat":       float64(1700000000),
	})

	claims := token.Decode(raw)
	require.False(t, claims.Zero())
	require.Equal(t, "user-1", claims.Sub)
	require.Equal(t, "ana.petrovic@example.com", claims.Email)
	require.Equal(t, "Ana", claims.FirstName)
	require.Equal(t, "Petrovic", claims.LastName)
	require.Equal(t, "CompanyUser", claims.Role)
	require.Equal(t, int64(1900000000), claims.Exp)
	require.Equal(t, int64(1700000000), claims.Iat)
}

func TestDecodeMalformedTokens(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"one segment", "abc"},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"invalid base64", "!!!.###.$$$"},
		{"payload not json", forgeNonJSONPayload()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims := token.Decode(tc.raw)
			require.True(t, claims.Zero(), "malformed token must decode to empty claims")
		})
	}
}

func forgeNonJSONPayload() string {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + enc.EncodeToString([]byte("not json at all")) + "." + enc.EncodeToString([]byte("sig"))
}

func TestClaimsExpired(t *testing.T) {
	now := time.Unix(1800000000, 0)

	tests := []struct {
		name    string
		exp     int64
		expired bool
	}{
		{"exp in the past", now.Unix() - 60, true},
		{"exp absent", 0, true},
		{"exp exactly now", now.Unix(), true},
		{"exp in the future", now.Unix() + 60, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := token.Claims{Exp: tc.exp}
			require.Equal(t, tc.expired, c.Expired(now))
		})
	}
}
