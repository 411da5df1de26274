// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/concierge-tui/internal/model"
	"github.com/jeranaias/concierge-tui/internal/util"
)

// ExportTranscript renders the conversation as Markdown and writes it to
// path atomically. Failed assistant messages are marked so the transcript
// distinguishes real replies from delivery errors.
func ExportTranscript(conv *model.Conversation, path string) error {
	if conv == nil {
		return fmt.Errorf("conversation is nil")
	}
	return util.AtomicWriteFile(path, []byte(RenderTranscript(conv)), 0644)
}

// RenderTranscript builds the Markdown transcript for a conversation.
func RenderTranscript(conv *model.Conversation) string {
	var b strings.Builder

	b.WriteString("# " + conv.GetTitle() + "\n\n")
	b.WriteString("- Started: " + conv.CreatedAt.Format(time.RFC1123) + "\n")
	if conv.ChatSessionID != "" {
		b.WriteString("- Chat session: " + conv.ChatSessionID + "\n")
	}
	b.WriteString(fmt.Sprintf("- Messages: %d\n\n", conv.MessageCount()))

	for _, msg := range conv.GetHistory() {
		b.WriteString("## " + msg.Role.DisplayName())
		b.WriteString(" (" + msg.Timestamp.Format("15:04:05") + ")")
		if msg.IsError() {
			b.WriteString(" [delivery failed]")
		}
		b.WriteString("\n\n")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}

// DefaultTranscriptName returns a timestamped file name for an export.
func DefaultTranscriptName(now time.Time) string {
	return "concierge-" + now.Format("2006-01-02-150405") + ".md"
}
