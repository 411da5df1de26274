// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/concierge-tui/internal/session"
	"github.com/jeranaias/concierge-tui/internal/storage"
	"github.com/jeranaias/concierge-tui/internal/ui/components"
)

const sendTimeout = 60 * time.Second

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case ExportResultMsg:
		if msg.Err != nil {
			m.banner.Show("Export failed: " + msg.Err.Error())
		} else {
			m.notice = "Transcript saved to " + msg.Path
		}
		return m, nil

	case StatusNoticeMsg:
		m.notice = msg.Text
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.typing, cmd = m.typing.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.banner.SetWidth(msg.Width)
	m.renderer.SetWidth(msg.Width)
	m.input.Width = msg.Width - 6

	viewportHeight := msg.Height - m.chromeHeight()
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}
	m.refreshViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()
	}

	// Everything else edits the input, unless a send is in flight.
	if m.controller.Busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit dispatches slash commands and regular sends.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.SetValue("")
		return m.handleCommand(text)
	}

	if m.controller.Busy() {
		return m, nil
	}

	m.banner.Clear()
	m.notice = ""

	// Optimistic append: the user message shows up with a "sending"
	// marker before the network round trip starts.
	if _, err := m.controller.Begin(text); err != nil {
		if errors.Is(err, session.ErrEmptyMessage) {
			return m, nil
		}
		m.banner.Show(err.Error())
		return m, nil
	}

	m.input.SetValue("")
	m.statusBar.SetStatus(components.StatusSending)
	m.refreshViewport()

	controller := m.controller
	sendCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		outcome, err := controller.Complete(ctx)
		return SendResultMsg{Outcome: outcome, Err: err}
	}

	return m, tea.Batch(m.typing.Start(), sendCmd)
}

func (m Model) handleSendResult(msg SendResultMsg) (Model, tea.Cmd) {
	m.typing.Stop()
	m.statusBar.SetStatus(components.StatusReady)

	if msg.Err != nil {
		m.banner.Show(msg.Err.Error())
		return m, nil
	}
	if msg.Outcome != nil && msg.Outcome.Failed {
		m.statusBar.SetStatus(components.StatusError)
	}

	m.refreshViewport()
	return m, nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (m Model) handleCommand(text string) (Model, tea.Cmd) {
	fields := strings.Fields(text)
	cmd := fields[0]

	switch cmd {
	case "/help":
		m.showHelp = !m.showHelp
		return m, nil

	case "/new":
		if err := m.controller.Reset(); err != nil {
			m.banner.Show("Cannot start a new chat while a send is in flight")
			return m, nil
		}
		m.notice = "Started a new conversation"
		m.refreshViewport()
		return m, nil

	case "/export":
		return m, m.exportCmd(fields[1:])

	case "/logout":
		manager := m.manager
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			manager.Logout(ctx)
			return LogoutRequestMsg{}
		}

	case "/quit":
		return m, tea.Quit

	default:
		m.banner.Show("Unknown command " + cmd + " (try /help)")
		return m, nil
	}
}

// exportCmd writes the transcript to the given path, or a timestamped
// file in the current directory.
func (m Model) exportCmd(args []string) tea.Cmd {
	conv := m.controller.Conversation()

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	return func() tea.Msg {
		target := path
		if target == "" {
			target = storage.DefaultTranscriptName(time.Now())
		}
		target = filepath.Clean(target)

		if err := storage.ExportTranscript(conv, target); err != nil {
			return ExportResultMsg{Err: err}
		}
		return ExportResultMsg{Path: target}
	}
}
