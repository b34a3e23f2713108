package auth

import "errors"

var (
	ErrNoAccessToken  = errors.New("No access token received")
	ErrNoRefreshToken = errors.New("No refresh token available")
)
