// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/concierge-tui/internal/model"
	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// MessageRenderer formats conversation messages for the chat viewport.
// Concierge replies are rendered through glamour when markdown is
// enabled; user messages are always shown verbatim.
type MessageRenderer struct {
	theme          *styles.Theme
	markdown       *glamour.TermRenderer
	width          int
	showTimestamps bool
	useMarkdown    bool
}

// NewMessageRenderer creates a renderer for the given theme and width.
func NewMessageRenderer(theme *styles.Theme, width int, useMarkdown, showTimestamps bool) *MessageRenderer {
	r := &MessageRenderer{
		theme:          theme,
		width:          width,
		showTimestamps: showTimestamps,
		useMarkdown:    useMarkdown,
	}
	r.initMarkdown()
	return r
}

// SetWidth updates the wrap width and rebuilds the markdown renderer.
func (r *MessageRenderer) SetWidth(width int) {
	if width == r.width {
		return
	}
	r.width = width
	r.initMarkdown()
}

func (r *MessageRenderer) initMarkdown() {
	if !r.useMarkdown {
		r.markdown = nil
		return
	}

	wrap := r.width - 6
	if wrap < 20 {
		wrap = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Fall back to plain text with code fences highlighted.
		r.markdown = nil
		return
	}
	r.markdown = renderer
}

// Render formats a single message as one or more lines.
func (r *MessageRenderer) Render(msg *model.Message) string {
	var b strings.Builder

	b.WriteString(r.renderLabel(msg))
	b.WriteString("\n")
	b.WriteString(r.renderBody(msg))

	return b.String()
}

// RenderAll formats the whole thread, separated by blank lines.
func (r *MessageRenderer) RenderAll(messages []*model.Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, r.Render(msg))
	}
	return strings.Join(parts, "\n\n")
}

// renderLabel renders the "You" / "Concierge" line with timestamp and
// delivery marker.
func (r *MessageRenderer) renderLabel(msg *model.Message) string {
	var label string
	if msg.Role == model.RoleUser {
		label = r.theme.UserLabel.Render(msg.Role.DisplayName())
	} else {
		label = r.theme.ReplyLabel.Render(msg.Role.DisplayName())
	}

	if r.showTimestamps {
		label += " " + r.theme.Timestamp.Render(msg.Timestamp.Format("15:04:05"))
	}

	switch msg.Status {
	case model.StatusPending:
		label += " " + r.theme.PendingMark.Render(styles.StatusIndicators.Pending+" sending")
	case model.StatusFailed:
		label += " " + r.theme.FailedMark.Render(styles.StatusIndicators.Error+" failed")
	}

	return label
}

func (r *MessageRenderer) renderBody(msg *model.Message) string {
	if msg.IsError() {
		return r.theme.FailedText.Render(msg.Content)
	}

	if msg.Role == model.RoleUser {
		return r.theme.UserText.Render(msg.Content)
	}

	content := msg.Content
	if r.markdown != nil {
		if rendered, err := r.markdown.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	} else {
		content = ParseCodeBlocks(content, r.width)
	}

	return r.theme.ReplyText.Render(content)
}
