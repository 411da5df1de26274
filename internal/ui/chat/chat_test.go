// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/concierge-tui/internal/api"
	"github.com/jeranaias/concierge-tui/internal/auth"
	"github.com/jeranaias/concierge-tui/internal/config"
	"github.com/jeranaias/concierge-tui/internal/session"
	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.ChatResponse{Reply: "Hi there", ChatSessionID: "s1"})
	}))
	t.Cleanup(backend.Close)

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: backend.URL})
	controller := session.NewController(client, nil)
	manager := auth.NewManager(client, nil, nil)

	m := New(controller, manager, config.Default(), styles.NewTheme())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_SubmitAppendsOptimistically(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "Hello")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit should return a send command")
	}

	// The user message is visible before the send resolves.
	if !strings.Contains(m.View(), "Hello") {
		t.Error("optimistic user message should be in the view")
	}
	if !m.controller.Busy() {
		t.Error("controller should be sending after submit")
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after submit")
	}
}

func TestModel_InputFrozenWhileSending(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "Hello")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m = typeText(m, "queued")
	if m.input.Value() != "" {
		t.Error("typing must be ignored while a send is in flight")
	}
}

func TestModel_SendResultRefreshesThread(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "Hello")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Run the send command synchronously, as the Bubble Tea runtime would.
	result := cmd()
	var sendMsg SendResultMsg
	switch v := result.(type) {
	case SendResultMsg:
		sendMsg = v
	case tea.BatchMsg:
		for _, c := range v {
			if sr, ok := c().(SendResultMsg); ok {
				sendMsg = sr
			}
		}
	default:
		t.Fatalf("unexpected message type %T", result)
	}

	if sendMsg.Err != nil {
		t.Fatalf("send failed: %v", sendMsg.Err)
	}

	m, _ = m.Update(sendMsg)
	if !strings.Contains(m.View(), "Hi there") {
		t.Error("reply should appear in the view after SendResultMsg")
	}
	if m.controller.Busy() {
		t.Error("controller should be idle after the result is handled")
	}
}

func TestModel_UnknownSlashCommand(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "/bogus")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.banner.Visible() {
		t.Error("unknown command should show an error banner")
	}
	if !strings.Contains(m.banner.Message(), "/bogus") {
		t.Errorf("banner %q should name the command", m.banner.Message())
	}
}

func TestModel_NewConversationCommand(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "/new")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.controller.Conversation().IsEmpty() {
		t.Error("/new should produce an empty conversation")
	}
	if m.notice == "" {
		t.Error("/new should set a notice")
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	if !m.showHelp {
		t.Error("ctrl+h should show help")
	}
	if !strings.Contains(m.View(), "/export") {
		t.Error("help should list slash commands")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	if m.showHelp {
		t.Error("ctrl+h should hide help again")
	}
}
