// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the concierge TUI color palette and Lip Gloss
// styles. Colors are AdaptiveColor pairs so the interface stays legible
// on both light and dark terminal backgrounds; the Theme detects the
// terminal's capabilities via termenv at startup.
package styles
