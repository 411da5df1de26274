// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// CLI OUTPUT STYLES
// =============================================================================
//
// Styles are constructed lazily so NO_COLOR and non-TTY detection have
// already run by the time output happens. When colors are disabled the
// styles render plain text.

func promptStyle() lipgloss.Style {
	if !ColorsEnabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(styles.Teal).Bold(true)
}

func replyLabelStyle() lipgloss.Style {
	if !ColorsEnabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(styles.Indigo).Bold(true)
}

func infoStyle() lipgloss.Style {
	if !ColorsEnabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(styles.TextSecondary)
}

func errorStyle() lipgloss.Style {
	if !ColorsEnabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
}

func successStyle() lipgloss.Style {
	if !ColorsEnabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
}
