// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session contains the chat controller: the state machine that
// owns the conversation and drives the send/receive protocol.
//
// Sends are single-flight: at most one is outstanding at a time, and a
// new send is refused (not queued) while one is pending. The controller
// moves idle -> sending -> idle; there is no retry state and no
// cancellation.
//
// A send is two-phase so the UI can render the optimistic update before
// the network call resolves:
//
//	msg, err := ctrl.Begin(text)   // validate, append pending user message
//	outcome := ctrl.Complete(ctx)  // network call + reconciliation
//
// Send combines both phases for non-interactive callers.
package session
