// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

// Session is the authenticated identity for the current user: who they
// are plus the bearer token attached to backend requests.
type Session struct {
	UserID   int64
	Username string
	Token    string
}

// Valid reports whether the session can authenticate requests.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}
