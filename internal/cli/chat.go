// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - interactive line-mode chat command handler.
//
// A lighter alternative to the full TUI for slow links and scripts.
// Arrow-key history is provided by liner and persisted across runs.
//
// Interactive commands:
//   /help           Show available commands
//   /new            Start a new conversation
//   /export [path]  Save the transcript to a markdown file
//   /quit, Ctrl+D   Exit

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/concierge-tui/internal/config"
	"github.com/jeranaias/concierge-tui/internal/storage"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader wraps liner with persistent history.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader() *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = ""
	}

	r := &lineReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *lineReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

func (r *lineReader) readInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *lineReader) close() {
	if r.historyFile != "" {
		if err := config.EnsureConfigDir(); err == nil {
			if f, err := os.OpenFile(r.historyFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600); err == nil {
				r.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	r.line.Close()
}

// =============================================================================
// CHAT REPL
// =============================================================================

// RunChat runs the interactive line-mode chat loop.
func (a *App) RunChat(args *ArgParser) int {
	if err := RequiresTTY("chat"); err != nil {
		return a.fail(err)
	}
	if !a.Auth.IsAuthenticated() {
		return a.fail(errors.New("not signed in; run 'concierge login' first"))
	}

	reader := newLineReader()
	defer reader.close()

	sess := a.Auth.Current()
	fmt.Println(infoStyle().Render("Connected to " + a.Config.Server.URL + " as " + sess.Username))
	fmt.Println(infoStyle().Render("Type /help for commands, /quit or Ctrl+D to exit."))
	fmt.Println()

	for {
		input, err := reader.readInput(promptStyle().Render("you> "))
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			fmt.Println()
			return 0
		}

		text := strings.TrimSpace(input)
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "/") {
			if done := a.handleChatCommand(text); done {
				return 0
			}
			continue
		}

		a.sendAndPrint(text)
	}
}

// sendAndPrint runs one send round trip and prints the result.
func (a *App) sendAndPrint(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendCmdTimeout)
	defer cancel()

	outcome, err := a.Controller.Send(ctx, text)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle().Render("error: "+err.Error()))
		return
	}

	fmt.Print(replyLabelStyle().Render("concierge> "))
	if outcome.Failed {
		fmt.Println(errorStyle().Render(outcome.Reply.Content))
		return
	}

	if a.Config.UI.Markdown {
		if rendered, err := renderMarkdown(outcome.Reply.Content); err == nil {
			fmt.Print(rendered)
			return
		}
	}
	fmt.Println(WrapText(outcome.Reply.Content, GetTerminalWidth()))
}

// handleChatCommand handles slash commands; returns true to exit.
func (a *App) handleChatCommand(text string) bool {
	fields := strings.Fields(text)

	switch fields[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(infoStyle().Render(
			"/new            start a new conversation\n" +
				"/export [path]  save the transcript to a markdown file\n" +
				"/quit           exit"))
		return false

	case "/new":
		if err := a.Controller.Reset(); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle().Render(err.Error()))
			return false
		}
		fmt.Println(infoStyle().Render("Started a new conversation."))
		return false

	case "/export":
		path := ""
		if len(fields) > 1 {
			path = fields[1]
		}
		if path == "" {
			path = storage.DefaultTranscriptName(time.Now())
		}
		if err := storage.ExportTranscript(a.Controller.Conversation(), path); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle().Render("export failed: "+err.Error()))
			return false
		}
		fmt.Println(successStyle().Render("Transcript saved to " + path))
		return false

	default:
		fmt.Fprintln(os.Stderr, errorStyle().Render("unknown command "+fields[0]+" (try /help)"))
		return false
	}
}
