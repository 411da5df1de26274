// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/concierge-tui/internal/api"
	"github.com/jeranaias/concierge-tui/internal/storage"
)

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the current Session and drives the auth flows against the
// backend. It installs the session token on the API client so subsequent
// requests are authenticated, and mirrors the session into the credential
// store so a restart can be bridged.
//
// The Manager is safe for concurrent use.
type Manager struct {
	client *api.Client
	store  *storage.CredentialStore
	logger *log.Logger

	// Local throttle on login attempts. Refused attempts never reach the
	// network.
	loginLimiter *rate.Limiter

	mu      sync.RWMutex
	session *Session
}

// NewManager creates an auth manager. store may be nil, in which case
// sessions are held in memory only. logger may be nil to discard
// diagnostics.
func NewManager(client *api.Client, store *storage.CredentialStore, logger *log.Logger) *Manager {
	return &Manager{
		client:       client,
		store:        store,
		logger:       logger,
		loginLimiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
	}
}

// Current returns the active session, or nil when unauthenticated.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// IsAuthenticated reports whether a valid session is held.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().Valid()
}

// =============================================================================
// LOGIN / REGISTER
// =============================================================================

// Login authenticates with the backend. On success the session token is
// installed on the API client and persisted to the credential store.
// Either a full Session is produced or none; no partial state survives a
// failed login.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	if !m.loginLimiter.Allow() {
		return nil, ErrTooManyAttempts
	}

	resp, err := m.client.Login(ctx, username, password)
	if err != nil {
		return nil, m.mapError("login", err)
	}

	session := &Session{
		UserID:   resp.UserID,
		Username: resp.Username,
		Token:    resp.SessionToken,
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.client.SetToken(session.Token)
	m.persist(session)

	return session, nil
}

// Register creates an account, then logs in with the same credentials to
// obtain a Session.
func (m *Manager) Register(ctx context.Context, username, password, fullname string) (*Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}
	if fullname == "" {
		return nil, &ValidationError{Field: "fullname", Message: "Full name is required."}
	}

	if err := m.client.Register(ctx, username, password, fullname); err != nil {
		return nil, m.mapError("register", err)
	}

	return m.Login(ctx, username, password)
}

// =============================================================================
// LOGOUT
// =============================================================================

// Logout ends the session. The backend call is best-effort; local state
// (session, installed token, persisted credentials) is cleared no matter
// what, so logout never fails from the user's perspective.
func (m *Manager) Logout(ctx context.Context) {
	if m.IsAuthenticated() {
		if err := m.client.Logout(ctx); err != nil {
			m.logf("logout: backend call failed: %v", err)
		}
	}

	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()

	m.client.SetToken("")

	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			m.logf("logout: failed to clear credential store: %v", err)
		}
	}
}

// =============================================================================
// RESTORE
// =============================================================================

// Restore rehydrates a session from the credential store at startup.
// Returns nil (not an error) when no credentials are persisted.
func (m *Manager) Restore() (*Session, error) {
	if m.store == nil {
		return nil, nil
	}

	token, err := m.store.Get(storage.KeySessionToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session := &Session{Token: token}
	if username, err := m.store.Get(storage.KeyUsername); err == nil {
		session.Username = username
	}
	if idStr, err := m.store.Get(storage.KeyUserID); err == nil {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			session.UserID = id
		}
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.client.SetToken(session.Token)
	return session, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func validateCredentials(username, password string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "Username is required."}
	}
	if password == "" {
		return &ValidationError{Field: "password", Message: "Password is required."}
	}
	return nil
}

// mapError converts API client errors into the auth taxonomy. Backend
// rejections keep their detail text; transport failures collapse into a
// NetworkError whose raw cause is only logged.
func (m *Manager) mapError(op string, err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &AuthError{Op: op, Detail: apiErr.Detail}
	}
	m.logf("%s: transport failure: %v", op, err)
	return &NetworkError{Cause: err}
}

// persist mirrors the session into the credential store. Failures are
// logged, not fatal: the in-memory session stays usable for this run.
func (m *Manager) persist(session *Session) {
	if m.store == nil {
		return
	}
	pairs := map[string]string{
		storage.KeySessionToken: session.Token,
		storage.KeyUserID:       strconv.FormatInt(session.UserID, 10),
		storage.KeyUsername:     session.Username,
	}
	for key, value := range pairs {
		if err := m.store.Put(key, value); err != nil {
			m.logf("persist: failed to store %s: %v", key, err)
		}
	}
}

func (m *Manager) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
