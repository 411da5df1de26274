// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/concierge-tui/internal/auth"
	"github.com/jeranaias/concierge-tui/internal/config"
	"github.com/jeranaias/concierge-tui/internal/session"
	"github.com/jeranaias/concierge-tui/internal/ui/components"
	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Wiring
	controller *session.Controller
	manager    *auth.Manager
	cfg        *config.Config

	// Styling
	theme    *styles.Theme
	renderer *components.MessageRenderer

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	typing    components.TypingIndicator
	statusBar *components.StatusBar
	banner    components.ErrorBanner

	// Key bindings
	keys KeyMap

	// State
	width    int
	height   int
	ready    bool
	notice   string
	showHelp bool
}

// New creates the chat view.
func New(controller *session.Controller, manager *auth.Manager, cfg *config.Config, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 4000
	input.Focus()

	sb := components.NewStatusBar()
	sb.ServerURL = cfg.Server.URL
	if s := manager.Current(); s != nil {
		sb.Username = s.Username
	}

	return Model{
		controller: controller,
		manager:    manager,
		cfg:        cfg,
		theme:      theme,
		renderer:   components.NewMessageRenderer(theme, 80, cfg.UI.Markdown, cfg.UI.ShowTimestamps),
		input:      input,
		typing:     components.NewTypingIndicator(),
		statusBar:  sb,
		banner:     components.NewErrorBanner(),
		keys:       DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// ApplyConfig picks up reloaded settings (theme/markdown toggles).
func (m *Model) ApplyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.renderer = components.NewMessageRenderer(m.theme, m.width, cfg.UI.Markdown, cfg.UI.ShowTimestamps)
	m.statusBar.ServerURL = cfg.Server.URL
	if m.ready {
		m.refreshViewport()
	}
}

// refreshViewport re-renders the thread and keeps the view pinned to
// the bottom.
func (m *Model) refreshViewport() {
	conv := m.controller.Conversation()
	m.viewport.SetContent(m.renderer.RenderAll(conv.Messages))
	m.viewport.GotoBottom()
	m.statusBar.MessageCount = conv.MessageCount()
}
