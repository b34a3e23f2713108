// Package auth orchestrates the session lifecycle against the platform
// backend: registration, login, logout and token refresh. A session is
// Anonymous (no token, or an expired one) or Authenticated (valid unexpired
// token in the store); logout and failed refresh always land back on
// Anonymous.
package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/logitrans/navigo-go/api"
	"github.com/logitrans/navigo-go/token"
)

const (
	registerPath = "/api/user"
	loginPath    = "/api/auth/login"
	logoutPath   = "/api/auth/logout"
	refreshPath  = "/api/auth/refresh"
)

// Client is the subset of the API client the auth service needs.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Credentials are the login form inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCreateDto is the backend's registration contract. UserRole is 1 for
// regular users and 2 for company users; CompanyID is nil for individuals.
type UserCreateDto struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	UserRole    int    `json:"userRole"`
	CompanyID   *int64 `json:"companyId"`
}

// Result is the uniform outcome shape every auth operation reports. Failures
// never reach callers as raw errors.
type Result struct {
	Success bool
	Message string
}

// LoginResult carries the issued credential alongside the outcome.
type LoginResult struct {
	Result
	Credential *token.Credential
}

// Service coordinates the backend auth endpoints with the local token store.
type Service struct {
	client  Client
	store   token.Store
	nowTime func() time.Time
}

// ServiceOption modifies a Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService creates a Service with the required dependencies.
func NewService(client Client, store token.Store, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] client is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] store is required")
	}

	service := &Service{
		client:  client,
		store:   store,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Register submits a new user to the backend. It never touches the session
// state: a freshly registered user still has to log in.
func (s *Service) Register(ctx context.Context, user UserCreateDto) Result {
	if err := s.client.Post(ctx, registerPath, user, nil); err != nil {
		return Result{Success: false, Message: failureMessage(err, "Registration failed. Please try again.")}
	}
	return Result{Success: true, Message: "Registration successful! Please check your email for verification."}
}

// Login exchanges credentials for a token pair. A 2xx response without an
// access token still counts as a failure. On success the credential and its
// decoded claims are persisted, moving the session to Authenticated.
func (s *Service) Login(ctx context.Context, creds Credentials) LoginResult {
	var cred token.Credential
	if err := s.client.Post(ctx, loginPath, creds, &cred); err != nil {
		return LoginResult{Result: Result{Success: false, Message: failureMessage(err, "Login failed. Please check your credentials.")}}
	}

	if cred.AccessToken == "" {
		return LoginResult{Result: Result{Success: false, Message: ErrNoAccessToken.Error()}}
	}

	if err := s.store.Save(cred); err != nil {
		log.Error().Err(err).Msg("failed to persist credential after login")
		return LoginResult{Result: Result{Success: false, Message: "Login failed. Please check your credentials."}}
	}

	return LoginResult{
		Result:     Result{Success: true, Message: "Login successful!"},
		Credential: &cred,
	}
}

// Logout posts the refresh token to the backend best-effort and always clears
// the local store: the local session ends even when the server call fails.
func (s *Service) Logout(ctx context.Context) Result {
	if refresh := s.store.RefreshToken(); refresh != "" {
		if err := s.client.Post(ctx, logoutPath, tokenBody{Token: refresh}, nil); err != nil {
			log.Debug().Err(err).Msg("logout call failed, clearing local session anyway")
		}
	}

	if err := s.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear token store on logout")
	}

	return Result{Success: true, Message: "Logged out successfully"}
}

// Refresh exchanges the refresh token for a fresh pair. Any failure cascades
// into Logout and is reported as an expired session.
func (s *Service) Refresh(ctx context.Context) Result {
	refresh := s.store.RefreshToken()
	if refresh == "" {
		log.Debug().Err(ErrNoRefreshToken).Msg("refresh requested without a stored refresh token")
		s.Logout(ctx)
		return Result{Success: false, Message: "Session expired. Please login again."}
	}

	var cred token.Credential
	if err := s.client.Post(ctx, refreshPath, tokenBody{Token: refresh}, &cred); err != nil {
		s.Logout(ctx)
		return Result{Success: false, Message: "Session expired. Please login again."}
	}

	if cred.AccessToken == "" {
		s.Logout(ctx)
		return Result{Success: false, Message: "Session expired. Please login again."}
	}

	if err := s.store.Save(cred); err != nil {
		s.Logout(ctx)
		return Result{Success: false, Message: "Session expired. Please login again."}
	}

	return Result{Success: true, Message: "Session refreshed"}
}

// IsAuthenticated reports whether an unexpired access token is stored. It is
// synchronous and never calls the backend.
func (s *Service) IsAuthenticated() bool {
	access := s.store.AccessToken()
	if access == "" {
		return false
	}
	return !token.Decode(access).Expired(s.nowTime())
}

// CurrentUser returns the cached claims without checking expiry.
func (s *Service) CurrentUser() *token.Claims {
	return s.store.CachedUser()
}

// tokenBody is the {token: ...} shape the logout and refresh endpoints take.
type tokenBody struct {
	Token string `json:"token"`
}

// failureMessage surfaces the backend's structured message verbatim and hides
// transport noise behind a generic fallback.
func failureMessage(err error, fallback string) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return fallback
}
