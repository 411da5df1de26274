// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/concierge-tui/internal/api"
	"github.com/jeranaias/concierge-tui/internal/auth"
	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client := api.NewClient()
	manager := auth.NewManager(client, nil, nil)
	return New(manager, styles.NewTheme())
}

func TestNew_StartsInLoginMode(t *testing.T) {
	m := newTestModel(t)

	if m.mode != ModeLogin {
		t.Error("form should start in login mode")
	}
	if m.focus != fieldUsername {
		t.Error("username field should have initial focus")
	}
	if !strings.Contains(m.View(), "Sign in") {
		t.Error("login mode view should show the sign-in title")
	}
	if strings.Contains(m.View(), "Full name") {
		t.Error("login mode should not show the full name field")
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != ModeRegister {
		t.Fatal("ctrl+r should switch to register mode")
	}
	if !strings.Contains(m.View(), "Full name") {
		t.Error("register mode should show the full name field")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != ModeLogin {
		t.Error("ctrl+r should switch back to login mode")
	}
}

func TestModel_FocusCycle(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldPassword {
		t.Errorf("focus = %d after tab, want password field", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldUsername {
		t.Errorf("focus = %d after wrap, want username field", m.focus)
	}
}

func TestModel_AuthFailedShowsBannerAndClearsPassword(t *testing.T) {
	m := newTestModel(t)
	m.inputs[fieldPassword].SetValue("secret")
	m.submitting = true

	m, _ = m.Update(AuthFailedMsg{Err: errors.New("Login failed. Please try again.")})

	if m.submitting {
		t.Error("failed attempt should clear the submitting flag")
	}
	if !m.banner.Visible() {
		t.Fatal("banner should be visible after a failed attempt")
	}
	if !strings.Contains(m.View(), "Login failed") {
		t.Error("view should show the error text")
	}
	if m.inputs[fieldPassword].Value() != "" {
		t.Error("password field should be cleared after a failure")
	}
}

func TestModel_SecondFailureReplacesFirst(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(AuthFailedMsg{Err: errors.New("first error")})
	m, _ = m.Update(AuthFailedMsg{Err: errors.New("second error")})

	view := m.View()
	if strings.Contains(view, "first error") {
		t.Error("old error should be replaced")
	}
	if !strings.Contains(view, "second error") {
		t.Error("latest error should be visible")
	}
}

func TestModel_KeysIgnoredWhileSubmitting(t *testing.T) {
	m := newTestModel(t)
	m.submitting = true

	before := m.inputs[fieldUsername].Value()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.inputs[fieldUsername].Value() != before {
		t.Error("input should be frozen while submitting")
	}
}
