package token

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Credential is an issued access/refresh token pair. It is owned by the Store
// once saved and destroyed on logout or a failed refresh.
type Credential struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store persists the current credential and a redundant cache of its decoded
// claims for quick synchronous reads. Mutations write through immediately.
// Readers never fail: a missing or corrupt entry reads as a zero value.
type Store interface {
	Save(cred Credential) error
	Clear() error
	AccessToken() string
	RefreshToken() string
	CachedUser() *Claims
}

// Source adapts a Store to oauth2.TokenSource so the stored credential can be
// handed to anything that speaks the standard token plumbing.
type Source struct {
	Store Store
}

var _ oauth2.TokenSource = Source{}

// Token returns the stored credential as an oauth2 bearer token.
func (s Source) Token() (*oauth2.Token, error) {
	access := s.Store.AccessToken()
	if access == "" {
		return nil, errors.New("[Source.Token] no access token stored")
	}
	tok := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: s.Store.RefreshToken(),
		TokenType:    "Bearer",
	}
	if claims := Decode(access); claims.Exp != 0 {
		tok.Expiry = time.Unix(claims.Exp, 0)
	}
	return tok, nil
}
