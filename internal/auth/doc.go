// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the authentication lifecycle: login, registration,
// logout, and the current Session.
//
// The Session is an explicit object held by the Manager, not ambient
// state. Lifecycle: Restore() at startup rehydrates a session from the
// credential store; Login/Register produce one; Logout tears it down.
// The client is always in exactly one of two states, unauthenticated
// (no session, no persisted token) or authenticated (both present).
//
// Error taxonomy:
//
//   - *ValidationError: missing required fields, caught locally before
//     any network call
//   - *AuthError: the backend rejected the request; carries the backend's
//     detail message
//   - *NetworkError: transport failure; carries a fixed user-facing
//     message, never the raw error
//
// Logout is best-effort against the backend but clears local state
// unconditionally: a user can always exit an authenticated state even
// when the backend is unreachable.
package auth
