// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view of the TUI: the scrollback
// viewport, the input line, the typing indicator, and the status bar.
//
// Sends are single-flight. When the user submits a line the optimistic
// user message is appended synchronously (so it renders immediately
// with a "sending" marker) and the network half runs in a Bubble Tea
// command. While a send is in flight the input is disabled; the result
// comes back as a SendResultMsg.
package chat
