// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/concierge-tui/internal/session"

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// SendResultMsg delivers the outcome of an in-flight send. Err is only
// set for protocol misuse (no pending send); delivery failures arrive
// as a resolved Outcome with Failed set.
type SendResultMsg struct {
	Outcome *session.Outcome
	Err     error
}

// ExportResultMsg reports the result of a /export command.
type ExportResultMsg struct {
	Path string
	Err  error
}

// LogoutRequestMsg asks the root model to log out and return to the
// login form. Local state is already cleared when this is emitted.
type LogoutRequestMsg struct{}

// StatusNoticeMsg shows a transient notice line above the input.
type StatusNoticeMsg struct {
	Text string
}
