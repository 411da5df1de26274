// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "errors"

// ErrTooManyAttempts is returned when the local login throttle refuses an
// attempt. No network call is made.
var ErrTooManyAttempts = errors.New("too many login attempts, please wait a moment")

// networkFallback is the only transport-failure text ever shown to the
// user; the raw error goes to the diagnostic log.
const networkFallback = "Unable to reach the concierge service. Please check your connection."

// ValidationError reports a missing or empty required field, detected
// locally before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError reports a backend rejection (bad credentials, duplicate
// username). Detail is the backend's message, already normalized.
type AuthError struct {
	Op     string
	Detail string
}

func (e *AuthError) Error() string {
	return e.Detail
}

// NetworkError reports a transport failure. Error() returns the fixed
// fallback text; the underlying cause is available via Unwrap for logging.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return networkFallback
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}
