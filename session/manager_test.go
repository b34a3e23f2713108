package session_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/logitrans/navigo-go/api"
	"github.com/logitrans/navigo-go/auth"
	"github.com/logitrans/navigo-go/session"
	"github.com/logitrans/navigo-go/token"
	"github.com/logitrans/navigo-go/token/storefake"
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

func setupManager(t *testing.T, handler http.Handler) (*session.Manager, *storefake.FakeStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := storefake.NewFakeStore()
	client, err := api.NewClient(srv.URL, api.WithTokenSource(token.Source{Store: store}))
	require.NoError(t, err)

	authService, err := auth.NewService(client, store)
	require.NoError(t, err)

	manager, err := session.NewManager(authService)
	require.NoError(t, err)
	return manager, store
}

func TestInitialStateIsDerivedSynchronously(t *testing.T) {
	manager, _ := setupManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	state := manager.Current()
	require.False(t, state.Loading)
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
}

func TestInitialStateWithValidStoredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(srv.Close)

	store := storefake.NewFakeStore()
	valid := forgeToken(t, map[string]any{
		"email": "ana@example.com",
		"exp":   float64(time.Now().Add(time.Hour).Unix()),
	})
	require.NoError(t, store.Save(token.Credential{AccessToken: valid, RefreshToken: "r"}))

	client, err := api.NewClient(srv.URL, api.WithTokenSource(token.Source{Store: store}))
	require.NoError(t, err)
	authService, err := auth.NewService(client, store)
	require.NoError(t, err)

	manager, err := session.NewManager(authService)
	require.NoError(t, err)

	state := manager.Current()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	require.Equal(t, "ana@example.com", state.User.Email)
}

func TestLoginUpdatesStateAndNotifiesSubscribers(t *testing.T) {
	accessToken := forgeToken(t, map[string]any{
		"email": "ana@example.com",
		"exp":   float64(time.Now().Add(time.Hour).Unix()),
	})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(token.Credential{AccessToken: accessToken, RefreshToken: "r"})
	})

	manager, _ := setupManager(t, handler)

	var notified []session.State
	unsubscribe := manager.Subscribe(func(s session.State) {
		notified = append(notified, s)
	})
	defer unsubscribe()

	result := manager.Login(context.Background(), auth.Credentials{Email: "ana@example.com", Password: "Pass1234"})
	require.True(t, result.Success)

	require.Len(t, notified, 1)
	require.True(t, notified[0].IsAuthenticated)
	require.True(t, manager.Current().IsAuthenticated)
}

func TestFailedLoginLeavesStateUntouched(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	})

	manager, _ := setupManager(t, handler)

	var notifications int
	defer manager.Subscribe(func(session.State) { notifications++ })()

	result := manager.Login(context.Background(), auth.Credentials{Email: "a@b.com", Password: "wrong"})
	require.False(t, result.Success)
	require.Zero(t, notifications)
	require.False(t, manager.Current().IsAuthenticated)
}

func TestLogoutResetsStateEvenWhenBackendFails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	manager, store := setupManager(t, handler)
	valid := forgeToken(t, map[string]any{"exp": float64(time.Now().Add(time.Hour).Unix())})
	require.NoError(t, store.Save(token.Credential{AccessToken: valid, RefreshToken: "r"}))
	manager.CheckAuthStatus()
	require.True(t, manager.Current().IsAuthenticated)

	result := manager.Logout(context.Background())
	require.True(t, result.Success)
	require.False(t, manager.Current().IsAuthenticated)
	require.Nil(t, manager.Current().User)
	require.True(t, store.Empty())
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	manager, _ := setupManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var notifications int
	unsubscribe := manager.Subscribe(func(session.State) { notifications++ })
	manager.CheckAuthStatus()
	require.Equal(t, 1, notifications)

	unsubscribe()
	manager.CheckAuthStatus()
	require.Equal(t, 1, notifications)
}

func TestDisposeSuppressesNotifications(t *testing.T) {
	manager, _ := setupManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var notifications int
	manager.Subscribe(func(session.State) { notifications++ })

	manager.Dispose()
	manager.CheckAuthStatus()
	require.Zero(t, notifications)
}
