// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI pieces of the concierge TUI:
// the typing indicator, status bar, error banner, message renderer, and
// syntax-highlighted code blocks.
package components
