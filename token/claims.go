package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims holds the identity and expiry fields carried inside an access token.
// They are extracted without signature verification: the backend is the only
// party that verifies tokens, the client just needs to read them.
type Claims struct {
	Sub       string `json:"sub,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
}

// Decode extracts the claims from a compact JWT without verifying its
// signature. Malformed input (wrong segment count, bad base64url, bad JSON)
// yields empty Claims rather than an error - a bad token must never take the
// caller down, it just reads as an anonymous session.
func Decode(raw string) Claims {
	unverified, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}
	}

	mapClaims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}
	}

	var c Claims
	c.Sub, _ = mapClaims["sub"].(string)
	c.Email, _ = mapClaims["email"].(string)
	c.FirstName, _ = mapClaims["firstName"].(string)
	c.LastName, _ = mapClaims["lastName"].(string)
	c.Role, _ = mapClaims["role"].(string)

	if exp, ok := mapClaims["exp"].(float64); ok {
		c.Exp = int64(exp)
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		c.Iat = int64(iat)
	}

	return c
}

// Expired reports whether the claims are past their expiry at the given
// instant. Claims without an exp are treated as already expired.
func (c Claims) Expired(now time.Time) bool {
	if c.Exp == 0 {
		return true
	}
	return c.Exp*1000 <= now.UnixMilli()
}

// Zero reports whether no field of the claims is populated, which is what
// Decode returns for malformed tokens.
func (c Claims) Zero() bool {
	return c == Claims{}
}
