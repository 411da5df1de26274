// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of concierge:
// login/logout, one-shot sends, an interactive line-mode chat REPL,
// status, and config management. Output degrades gracefully when
// stdout is not a terminal or NO_COLOR is set.
package cli
