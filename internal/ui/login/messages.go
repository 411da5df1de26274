// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import "github.com/jeranaias/concierge-tui/internal/auth"

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// AuthSuccessMsg signals that login (or register-then-login) succeeded.
// The root model switches to the chat view when it sees this.
type AuthSuccessMsg struct {
	Session *auth.Session
}

// AuthFailedMsg delivers an authentication error for the banner.
type AuthFailedMsg struct {
	Err error
}
