// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/concierge-tui/internal/model"
	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR TESTS
// =============================================================================

func TestTypingIndicator_Lifecycle(t *testing.T) {
	ti := NewTypingIndicator()

	if ti.IsActive() {
		t.Error("indicator should start inactive")
	}
	if ti.View() != "" {
		t.Error("inactive indicator should render nothing")
	}

	cmd := ti.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !ti.IsActive() {
		t.Error("indicator should be active after Start")
	}
	if !strings.Contains(ti.View(), "Concierge is typing") {
		t.Errorf("view %q missing typing message", ti.View())
	}

	ti.Stop()
	if ti.IsActive() {
		t.Error("indicator should be inactive after Stop")
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_View(t *testing.T) {
	sb := NewStatusBar()
	sb.Username = "alice"
	sb.ServerURL = "http://127.0.0.1:8000"
	sb.MessageCount = 4
	sb.SetWidth(100)

	view := sb.View()
	if !strings.Contains(view, "alice") {
		t.Error("wide view should show the username")
	}
	if !strings.Contains(view, "4 msgs") {
		t.Error("wide view should show the message count")
	}
	if !strings.Contains(view, StatusReady.String()) {
		t.Error("wide view should show the status text")
	}
}

func TestStatusBar_NarrowView(t *testing.T) {
	sb := NewStatusBar()
	sb.Username = "alice"
	sb.SetWidth(40)

	view := sb.View()
	if !strings.Contains(view, "alice") {
		t.Error("narrow view should still show the username")
	}
	if strings.Contains(view, StatusReady.String()) {
		t.Error("narrow view should use the icon, not the status text")
	}
}

func TestStatus_Strings(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusSending, "Sending..."},
		{StatusError, "Error"},
		{StatusOffline, "Offline"},
	}
	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
		if tc.status.Icon() == "" {
			t.Errorf("Status(%d) should have an icon", tc.status)
		}
	}
}

// =============================================================================
// ERROR BANNER TESTS
// =============================================================================

func TestErrorBanner_ReplacesPrevious(t *testing.T) {
	banner := NewErrorBanner()

	if banner.Visible() {
		t.Error("new banner should be empty")
	}

	banner.Show("first error")
	banner.Show("second error")

	if banner.Message() != "second error" {
		t.Errorf("Message = %q, want the latest error only", banner.Message())
	}
	if !strings.Contains(banner.View(), "second error") {
		t.Error("view should contain the latest error")
	}
	if strings.Contains(banner.View(), "first error") {
		t.Error("view should not contain the replaced error")
	}

	banner.Clear()
	if banner.Visible() || banner.View() != "" {
		t.Error("cleared banner should render nothing")
	}
}

// =============================================================================
// MESSAGE RENDERER TESTS
// =============================================================================

func TestMessageRenderer_StatusMarkers(t *testing.T) {
	theme := styles.NewTheme()
	r := NewMessageRenderer(theme, 80, false, false)

	pending := model.NewUserMessage("hello")
	if view := r.Render(pending); !strings.Contains(view, "sending") {
		t.Errorf("pending message view %q missing sending marker", view)
	}

	delivered := model.NewUserMessage("hello")
	delivered.MarkDelivered()
	if view := r.Render(delivered); strings.Contains(view, "sending") {
		t.Error("delivered message should not carry a sending marker")
	}

	failed := model.NewUserMessage("hello")
	failed.MarkFailed()
	if view := r.Render(failed); !strings.Contains(view, "failed") {
		t.Errorf("failed message view %q missing failed marker", view)
	}
}

func TestMessageRenderer_RenderAll(t *testing.T) {
	theme := styles.NewTheme()
	r := NewMessageRenderer(theme, 80, false, false)

	msgs := []*model.Message{
		model.NewUserMessage("Hello"),
		model.NewAssistantMessage("Hi there"),
	}
	view := r.RenderAll(msgs)

	if !strings.Contains(view, "Hello") || !strings.Contains(view, "Hi there") {
		t.Error("thread view should contain both messages")
	}
	if !strings.Contains(view, "You") || !strings.Contains(view, "Concierge") {
		t.Error("thread view should label both speakers")
	}
}

// =============================================================================
// CODE BLOCK TESTS
// =============================================================================

func TestParseCodeBlocks(t *testing.T) {
	text := "before\n```go\nfunc main() {}\n```\nafter"
	out := ParseCodeBlocks(text, 80)

	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Error("prose around the fence should be preserved")
	}
	if strings.Contains(out, "```") {
		t.Error("fence markers should be consumed")
	}
	if !strings.Contains(out, "main") {
		t.Error("code content should be present")
	}
}

func TestParseCodeBlocks_UnclosedFence(t *testing.T) {
	text := "```python\nprint('hi')"
	out := ParseCodeBlocks(text, 80)

	if !strings.Contains(out, "print") {
		t.Error("unclosed fence content should still render")
	}
}
