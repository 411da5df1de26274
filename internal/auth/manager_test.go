// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/concierge-tui/internal/api"
	"github.com/jeranaias/concierge-tui/internal/storage"
)

// =============================================================================
// TEST BACKEND
// =============================================================================

// fakeBackend is a minimal stand-in for the concierge service.
type fakeBackend struct {
	*httptest.Server

	calls        int64
	failLogout   bool
	rejectLogin  bool
	rejectDetail string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&fb.calls, 1)

		switch r.URL.Path {
		case "/users/login_user":
			if fb.rejectLogin {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": fb.rejectDetail})
				return
			}
			var req api.LoginRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(api.LoginResponse{
				UserID:       1,
				Username:     req.Username,
				SessionToken: "tok123",
			})
		case "/users/":
			w.WriteHeader(http.StatusCreated)
		case "/users/logout":
			if fb.failLogout {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(fb.Close)
	return fb
}

func (fb *fakeBackend) callCount() int64 {
	return atomic.LoadInt64(&fb.calls)
}

func newTestManager(t *testing.T, baseURL string) (*Manager, *api.Client, *storage.CredentialStore) {
	t.Helper()
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: baseURL})
	store, err := storage.OpenCredentialStore(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewManager(client, store, nil), client, store
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestManager_Login_ValidationBeforeNetwork(t *testing.T) {
	backend := newFakeBackend(t)
	mgr, _, _ := newTestManager(t, backend.URL)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret"},
		{"empty password", "alice", ""},
		{"both empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mgr.Login(context.Background(), tc.username, tc.password)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, int64(0), backend.callCount(), "validation failure must make zero network calls")
			assert.Nil(t, mgr.Current())
		})
	}
}

func TestManager_Register_ValidationBeforeNetwork(t *testing.T) {
	backend := newFakeBackend(t)
	mgr, _, _ := newTestManager(t, backend.URL)

	_, err := mgr.Register(context.Background(), "bob", "pw", "")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "fullname", valErr.Field)
	assert.Equal(t, int64(0), backend.callCount())
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestManager_Login_Success(t *testing.T) {
	backend := newFakeBackend(t)
	mgr, client, store := newTestManager(t, backend.URL)

	session, err := mgr.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.Equal(t, int64(1), session.UserID)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "tok123", session.Token)
	assert.True(t, mgr.IsAuthenticated())

	// The token is installed on the client and mirrored to the store.
	assert.Equal(t, "tok123", client.Token())
	persisted, err := store.Get(storage.KeySessionToken)
	require.NoError(t, err)
	assert.Equal(t, session.Token, persisted)
}

func TestManager_Login_BackendRejection(t *testing.T) {
	backend := newFakeBackend(t)
	backend.rejectLogin = true
	backend.rejectDetail = "Invalid credentials"
	mgr, client, store := newTestManager(t, backend.URL)

	_, err := mgr.Login(context.Background(), "alice", "wrong")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid credentials", authErr.Detail)

	// No partial state after a failed login.
	assert.Nil(t, mgr.Current())
	assert.Empty(t, client.Token())
	_, err = store.Get(storage.KeySessionToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestManager_Login_NetworkFailure(t *testing.T) {
	backend := newFakeBackend(t)
	url := backend.URL
	backend.Close()

	mgr, _, _ := newTestManager(t, url)

	_, err := mgr.Login(context.Background(), "alice", "secret")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	// The fixed fallback text, never the raw transport error.
	assert.Equal(t, networkFallback, netErr.Error())
	assert.NotNil(t, netErr.Unwrap())
	assert.Nil(t, mgr.Current())
}

func TestManager_Login_Throttled(t *testing.T) {
	backend := newFakeBackend(t)
	backend.rejectLogin = true
	backend.rejectDetail = "Invalid credentials"
	mgr, _, _ := newTestManager(t, backend.URL)

	// Exhaust the burst; the next attempt is refused locally.
	var throttled bool
	for i := 0; i < 10; i++ {
		_, err := mgr.Login(context.Background(), "alice", "wrong")
		if assert.Error(t, err) && err == ErrTooManyAttempts {
			throttled = true
			break
		}
	}
	assert.True(t, throttled, "expected ErrTooManyAttempts after repeated logins")
}

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestManager_Register_ChainsLogin(t *testing.T) {
	backend := newFakeBackend(t)
	mgr, _, store := newTestManager(t, backend.URL)

	session, err := mgr.Register(context.Background(), "bob", "hunter2", "Bob Builder")
	require.NoError(t, err)

	// Register success is followed by a login with the same credentials.
	assert.Equal(t, "bob", session.Username)
	assert.Equal(t, "tok123", session.Token)
	assert.True(t, mgr.IsAuthenticated())

	persisted, err := store.Get(storage.KeySessionToken)
	require.NoError(t, err)
	assert.Equal(t, "tok123", persisted)
}

// =============================================================================
// LOGOUT TESTS
// =============================================================================

func TestManager_Logout_AlwaysClearsLocally(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(fb *fakeBackend)
	}{
		{"backend success", func(fb *fakeBackend) {}},
		{"backend error", func(fb *fakeBackend) { fb.failLogout = true }},
		{"backend unreachable", func(fb *fakeBackend) { fb.Close() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			backend := newFakeBackend(t)
			mgr, client, store := newTestManager(t, backend.URL)

			_, err := mgr.Login(context.Background(), "alice", "secret")
			require.NoError(t, err)

			tc.prepare(backend)
			mgr.Logout(context.Background())

			assert.Nil(t, mgr.Current())
			assert.False(t, mgr.IsAuthenticated())
			assert.Empty(t, client.Token())
			_, err = store.Get(storage.KeySessionToken)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestManager_Logout_WhenUnauthenticated(t *testing.T) {
	backend := newFakeBackend(t)
	mgr, _, _ := newTestManager(t, backend.URL)

	// No session: logout is a local no-op and must not call the backend.
	mgr.Logout(context.Background())
	assert.Equal(t, int64(0), backend.callCount())
	assert.Nil(t, mgr.Current())
}

// =============================================================================
// RESTORE TESTS
// =============================================================================

func TestManager_Restore_FromStore(t *testing.T) {
	backend := newFakeBackend(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.db")

	// First run: login and let the session persist.
	store, err := storage.OpenCredentialStore(path)
	require.NoError(t, err)
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: backend.URL})
	mgr := NewManager(client, store, nil)
	_, err = mgr.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	store.Close()

	// Second run: a fresh manager restores the session.
	store2, err := storage.OpenCredentialStore(path)
	require.NoError(t, err)
	defer store2.Close()
	client2 := api.NewClientWithConfig(&api.ClientConfig{BaseURL: backend.URL})
	mgr2 := NewManager(client2, store2, nil)

	session, err := mgr2.Restore()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "tok123", session.Token)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, int64(1), session.UserID)
	assert.Equal(t, "tok123", client2.Token())
	assert.True(t, mgr2.IsAuthenticated())
}

func TestManager_Restore_NothingPersisted(t *testing.T) {
	backend := newFakeBackend(t)
	mgr, _, _ := newTestManager(t, backend.URL)

	session, err := mgr.Restore()
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.False(t, mgr.IsAuthenticated())
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestSession_Valid(t *testing.T) {
	assert.False(t, (*Session)(nil).Valid())
	assert.False(t, (&Session{}).Valid())
	assert.True(t, (&Session{Token: "tok123"}).Valid())
}
