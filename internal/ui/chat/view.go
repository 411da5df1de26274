// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Connecting..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
		b.WriteString("\n")
	}
	if m.typing.IsActive() {
		b.WriteString(m.typing.View())
		b.WriteString("\n")
	}
	if m.banner.Visible() {
		b.WriteString(m.banner.View())
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(m.theme.FormHint.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Concierge")
	subtitle := m.theme.HeaderSubtitle.Render(m.controller.Conversation().GetTitle())

	return m.theme.Header.Width(m.width).Render(title + "  " + subtitle)
}

func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	if m.controller.Busy() {
		return m.theme.InputContainer.Width(m.width).Render(
			prompt + m.theme.InputPlaceholder.Render("Waiting for reply..."))
	}
	return m.theme.InputContainer.Width(m.width).Render(prompt + m.input.View())
}

func (m Model) renderHelp() string {
	lines := []string{
		m.theme.ShortcutKey.Render("/new") + "     " + m.theme.ShortcutDesc.Render("start a new conversation"),
		m.theme.ShortcutKey.Render("/export") + "  " + m.theme.ShortcutDesc.Render("save the transcript to a markdown file"),
		m.theme.ShortcutKey.Render("/logout") + "  " + m.theme.ShortcutDesc.Render("sign out and return to the login form"),
		m.theme.ShortcutKey.Render("/quit") + "    " + m.theme.ShortcutDesc.Render("exit"),
		m.theme.ShortcutKey.Render("ctrl+h") + "   " + m.theme.ShortcutDesc.Render("toggle this help"),
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Indigo).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// chromeHeight is the number of rows taken by everything that is not
// the viewport: header, input, status bar, and the optional lines.
func (m Model) chromeHeight() int {
	h := 5 // header + input + status bar + separators
	if m.showHelp {
		h += 7
	}
	if m.typing.IsActive() {
		h++
	}
	if m.banner.Visible() || m.notice != "" {
		h++
	}
	return h
}
