// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the login and registration form for the TUI.
//
// The form has two modes, switched with Tab on the mode line or the
// /register command: sign-in (username, password) and sign-up
// (username, password, full name). Validation failures and backend
// rejections surface in an inline error banner; a new attempt replaces
// the previous error.
package login
