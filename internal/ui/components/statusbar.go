// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status represents the current connection/send state shown in the bar.
type Status int

const (
	StatusReady Status = iota
	StatusSending
	StatusError
	StatusOffline
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSending:
		return "Sending..."
	case StatusError:
		return "Error"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
// ACCESSIBILITY: Distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusSending:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusOffline:
		return styles.StatusIndicators.Warning
	default:
		return "?"
	}
}

// StatusBar is the bottom bar showing who is logged in, where, and what
// the client is doing.
type StatusBar struct {
	Username      string
	ServerURL     string
	Status        Status
	MessageCount  int
	Width         int
	ShowShortcuts bool
}

// NewStatusBar creates a status bar with default settings.
func NewStatusBar() *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar, choosing a layout based on width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact bar: user and status icon only.
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	if s.Username != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.Teal).Bold(true)
		parts = append(parts, userStyle.Render(s.Username))
	}

	parts = append(parts, s.statusStyle().Render(s.Status.Icon()))

	result := strings.Join(parts, " ")
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders the full bar: user | server | messages ... status | keys.
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	leftParts := []string{}

	if s.Username != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.Teal).Bold(true)
		leftParts = append(leftParts, userStyle.Render(s.Username))
	}

	if s.ServerURL != "" {
		serverStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, serverStyle.Render(s.ServerURL))
	}

	if s.MessageCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, countStyle.Render(strconv.Itoa(s.MessageCount)+" msgs"))
	}

	leftSection := strings.Join(leftParts, separator)

	rightParts := []string{
		s.statusStyle().Render(s.Status.Icon() + " " + s.Status.String()),
	}
	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}
	rightSection := strings.Join(rightParts, " ")

	spacing := s.Width - lipgloss.Width(leftSection) - lipgloss.Width(rightSection) - 2
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Teal).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("^H") + descStyle.Render("help"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// statusStyle returns the style for the current status.
// ACCESSIBILITY: High contrast colors with bold for colorblind users.
func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusSending:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError, StatusOffline:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
