// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a transport-level failure: the request never
// produced an HTTP response (connection refused, DNS failure, timeout).
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrCanceled    = &ClientError{Type: ErrTypeCanceled, Message: "request canceled"}
)

// APIError is a non-2xx response normalized to the backend's error shape.
// Detail is the backend-supplied "detail" field, or the operation's fixed
// fallback text when the body had none.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// Fallback detail text per operation, used when a non-2xx response carries
// no parseable {detail} body. Distinct per operation so the user-facing
// message always names what failed.
const (
	loginFallback    = "Login failed. Please try again."
	registerFallback = "Registration failed. Please try again."
	logoutFallback   = "Logout failed."
	sendFallback     = "Your message could not be delivered."
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return false
}

// IsCanceled checks if an error came from a caller-canceled context.
func IsCanceled(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeCanceled
	}
	return false
}

// IsUnreachable checks if an error indicates the backend could not be reached.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeConnection
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for requests (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the concierge backend.
// A session token set via SetToken is attached to every request as a
// bearer credential until cleared.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// SetToken installs the session token attached to subsequent requests.
// An empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed session token, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login authenticates with the backend and returns the session identity.
// It does not install the returned token; that is the caller's decision.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var result LoginResponse
	err := c.post(ctx, "/users/login_user", "login", loginFallback,
		LoginRequest{Username: username, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account. The backend's response body is used only
// to confirm success; callers log in afterwards to obtain a session.
func (c *Client) Register(ctx context.Context, username, password, fullname string) error {
	return c.post(ctx, "/users/", "register", registerFallback,
		RegisterRequest{Username: username, Password: password, Fullname: fullname}, nil)
}

// Logout invalidates the current session token on the backend.
// The token travels in the Authorization header; there is no body.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/users/logout", "logout", logoutFallback, nil, nil)
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// SendMessage delivers a user message and returns the assistant's reply.
// chatSessionID is "" on the first send of a conversation; the backend
// assigns one and includes it in the response.
func (c *Client) SendMessage(ctx context.Context, message, chatSessionID string) (*ChatResponse, error) {
	var result ChatResponse
	err := c.post(ctx, "/chat/", "send", sendFallback,
		ChatRequest{Message: message, ChatSessionID: chatSessionID}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// post issues a JSON POST and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become *APIError; transport failures become *ClientError.
func (c *Client) post(ctx context.Context, path, op, fallback string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Caller cancellation is not a timeout; keep the two distinguishable.
		if errors.Is(err, context.Canceled) {
			return ErrCanceled
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := fallback
		var payload errorBody
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
			detail = payload.Detail
		}
		return &APIError{Op: op, StatusCode: resp.StatusCode, Detail: detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
		}
	}

	return nil
}
