// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge-tui/internal/auth"
	"github.com/jeranaias/concierge-tui/internal/ui/components"
	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// FORM MODE
// =============================================================================

// Mode selects between the sign-in and sign-up variants of the form.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Field indices into the input slice.
const (
	fieldUsername = iota
	fieldPassword
	fieldFullname // register mode only
)

const authTimeout = 45 * time.Second

// =============================================================================
// LOGIN MODEL
// =============================================================================

// Model is the Bubble Tea model for the login/register form.
type Model struct {
	manager *auth.Manager
	theme   *styles.Theme

	mode   Mode
	inputs []textinput.Model
	focus  int

	banner  components.ErrorBanner
	spinner components.TypingIndicator

	submitting bool
	width      int
	height     int
}

// New creates the form in login mode.
func New(manager *auth.Manager, theme *styles.Theme) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	fullname := textinput.New()
	fullname.Placeholder = "full name"
	fullname.CharLimit = 128

	sp := components.NewTypingIndicator()
	sp.SetMessage("Signing in")
	sp.SetShowTimer(false)

	return Model{
		manager: manager,
		theme:   theme,
		mode:    ModeLogin,
		inputs:  []textinput.Model{username, password, fullname},
		banner:  components.NewErrorBanner(),
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.banner.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			// Ignore keystrokes while an attempt is in flight.
			return m, nil
		}
		return m.handleKey(msg)

	case AuthSuccessMsg:
		// The root model consumes this; nothing left to do here.
		m.submitting = false
		m.spinner.Stop()
		return m, nil

	case AuthFailedMsg:
		m.submitting = false
		m.spinner.Stop()
		m.banner.Show(msg.Err.Error())
		m.inputs[fieldPassword].SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		return m.cycleFocus(msg.String() == "tab" || msg.String() == "down"), nil

	case "ctrl+r":
		return m.toggleMode(), nil

	case "enter":
		if m.focus < m.lastField() {
			return m.cycleFocus(true), nil
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// cycleFocus moves focus to the next (or previous) visible field.
func (m Model) cycleFocus(forward bool) Model {
	m.inputs[m.focus].Blur()
	if forward {
		m.focus++
		if m.focus > m.lastField() {
			m.focus = 0
		}
	} else {
		m.focus--
		if m.focus < 0 {
			m.focus = m.lastField()
		}
	}
	m.inputs[m.focus].Focus()
	return m
}

// toggleMode switches between sign-in and sign-up, clearing the banner.
func (m Model) toggleMode() Model {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
		if m.focus > m.lastField() {
			m.inputs[m.focus].Blur()
			m.focus = fieldUsername
			m.inputs[m.focus].Focus()
		}
	}
	m.banner.Clear()
	return m
}

func (m Model) lastField() int {
	if m.mode == ModeRegister {
		return fieldFullname
	}
	return fieldPassword
}

// submit kicks off the authentication attempt in a command.
func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()
	fullname := strings.TrimSpace(m.inputs[fieldFullname].Value())

	m.banner.Clear()
	m.submitting = true

	mode := m.mode
	manager := m.manager

	authCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()

		var session *auth.Session
		var err error
		if mode == ModeRegister {
			session, err = manager.Register(ctx, username, password, fullname)
		} else {
			session, err = manager.Login(ctx, username, password)
		}
		if err != nil {
			return AuthFailedMsg{Err: err}
		}
		return AuthSuccessMsg{Session: session}
	}

	return m, tea.Batch(m.spinner.Start(), authCmd)
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in to Concierge"
	if m.mode == ModeRegister {
		title = "Create a Concierge account"
	}
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n\n")

	labels := []string{"Username", "Password", "Full name"}
	for i := 0; i <= m.lastField(); i++ {
		label := m.theme.FormLabel
		if i == m.focus {
			label = m.theme.FormLabelFocus
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	} else if m.banner.Visible() {
		b.WriteString("\n")
		b.WriteString(m.banner.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "enter submit - tab next field - ctrl+r switch to sign-up - ctrl+c quit"
	if m.mode == ModeRegister {
		hint = "enter submit - tab next field - ctrl+r switch to sign-in - ctrl+c quit"
	}
	b.WriteString(m.theme.FormHint.Render(hint))

	box := m.theme.FormBox.Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
