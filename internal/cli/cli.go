// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/jeranaias/concierge-tui/internal/auth"
	"github.com/jeranaias/concierge-tui/internal/config"
	"github.com/jeranaias/concierge-tui/internal/session"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdSend
	CmdChat
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

const usageText = `concierge - terminal client for the concierge chat service

Usage:
  concierge                    Start the TUI (default)
  concierge login              Sign in and store the session
  concierge register           Create an account and sign in
  concierge logout             Sign out and clear stored credentials
  concierge send "message"     Send one message and print the reply
  concierge chat               Interactive line-mode chat
  concierge status             Show connection and session status
  concierge config [show|get|set|path]
                               Configuration management
  concierge version            Show version
  concierge help               Show this help

Flags:
  --server URL     Override the server URL for this invocation
  --user NAME      Username for login/register (prompted otherwise)
  --no-markdown    Disable markdown rendering of replies

Environment:
  CONCIERGE_SERVER_URL    Server URL override
  CONCIERGE_THEME         dark | light | auto
  NO_COLOR                Disable colored output
`

// ParseCommand maps the first argument to a Command. Remaining args
// belong to the command.
func ParseCommand(args []string) (Command, []string) {
	if len(args) == 0 {
		return CmdTUI, nil
	}

	switch args[0] {
	case "login":
		return CmdLogin, args[1:]
	case "register", "signup":
		return CmdRegister, args[1:]
	case "logout":
		return CmdLogout, args[1:]
	case "send", "ask":
		return CmdSend, args[1:]
	case "chat":
		return CmdChat, args[1:]
	case "status", "s":
		return CmdStatus, args[1:]
	case "config":
		return CmdConfig, args[1:]
	case "version", "--version", "-v":
		return CmdVersion, args[1:]
	case "help", "--help", "-h":
		return CmdHelp, args[1:]
	default:
		// Unknown word: treat the whole line as a message to send.
		return CmdSend, args
	}
}

// App bundles the wiring every command needs.
type App struct {
	Config     *config.Config
	Auth       *auth.Manager
	Controller *session.Controller
	Logger     *log.Logger
}

// RunVersion prints version information.
func (a *App) RunVersion() int {
	fmt.Printf("concierge %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	return 0
}

// RunHelp prints usage.
func (a *App) RunHelp() int {
	fmt.Print(usageText)
	return 0
}

// fail prints an error to stderr and returns a nonzero exit code.
func (a *App) fail(err error) int {
	fmt.Fprintln(os.Stderr, errorStyle().Render("error: "+err.Error()))
	return 1
}
