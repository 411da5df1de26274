// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BANNER
// =============================================================================

// ErrorBanner shows a single dismissable error line, used by the login
// form and the chat view. Setting a new message replaces the previous
// one, so at most one error is visible at a time.
type ErrorBanner struct {
	message string
	width   int
}

// NewErrorBanner creates an empty banner.
func NewErrorBanner() ErrorBanner {
	return ErrorBanner{width: 80}
}

// SetWidth updates the banner width.
func (e *ErrorBanner) SetWidth(width int) {
	e.width = width
}

// Show replaces the visible error with message.
func (e *ErrorBanner) Show(message string) {
	e.message = message
}

// Clear dismisses the banner.
func (e *ErrorBanner) Clear() {
	e.message = ""
}

// Visible reports whether an error is showing.
func (e *ErrorBanner) Visible() bool {
	return e.message != ""
}

// Message returns the current error text.
func (e *ErrorBanner) Message() string {
	return e.message
}

// View renders the banner, or nothing when no error is set.
func (e ErrorBanner) View() string {
	if e.message == "" {
		return ""
	}

	mark := lipgloss.NewStyle().
		Foreground(styles.ErrorHighContrast).
		Bold(true).
		Render(styles.StatusIndicators.Error)

	text := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Render(e.message)

	maxWidth := e.width - 2
	if maxWidth < 20 {
		maxWidth = 20
	}

	return lipgloss.NewStyle().
		MaxWidth(maxWidth).
		Render(mark + " " + text)
}
