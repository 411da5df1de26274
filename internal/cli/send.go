// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// send.go - one-shot send command handler.
//
// Examples:
//   concierge send "What time does the pool open?"
//   concierge send what time does the pool open      (words are joined)
//   echo "question" | concierge send                 (reads stdin)

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/concierge-tui/internal/session"
)

const sendCmdTimeout = 60 * time.Second

// RunSend sends a single message and prints the reply. The exit code
// is nonzero when delivery failed.
func (a *App) RunSend(args *ArgParser) int {
	text := strings.Join(args.PositionalFrom(0), " ")
	if strings.TrimSpace(text) == "" && !IsTTY() {
		// Piped input: concierge send < file
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return a.fail(err)
		}
		text = string(data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendCmdTimeout)
	defer cancel()

	outcome, err := a.Controller.Send(ctx, text)
	if err != nil {
		if errors.Is(err, session.ErrEmptyMessage) {
			return a.fail(errors.New("nothing to send"))
		}
		return a.fail(err)
	}

	a.printReply(outcome)
	if outcome.Failed {
		return 1
	}
	return 0
}

// printReply writes the reply to stdout, through glamour when markdown
// rendering is enabled and stdout is a terminal.
func (a *App) printReply(outcome *session.Outcome) {
	content := outcome.Reply.Content

	if outcome.Failed {
		fmt.Fprintln(os.Stderr, errorStyle().Render(content))
		return
	}

	if a.Config.UI.Markdown && IsStdoutTTY() {
		if rendered, err := renderMarkdown(content); err == nil {
			fmt.Print(rendered)
			return
		}
	}
	fmt.Println(WrapText(content, GetTerminalWidth()))
}

func renderMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()-2),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
