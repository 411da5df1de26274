// concierge - a terminal client for the concierge chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/concierge-tui/internal/api"
	"github.com/jeranaias/concierge-tui/internal/auth"
	"github.com/jeranaias/concierge-tui/internal/cli"
	"github.com/jeranaias/concierge-tui/internal/config"
	"github.com/jeranaias/concierge-tui/internal/session"
	"github.com/jeranaias/concierge-tui/internal/storage"
	"github.com/jeranaias/concierge-tui/internal/ui/chat"
	"github.com/jeranaias/concierge-tui/internal/ui/login"
	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, rest := cli.ParseCommand(os.Args[1:])
	args := cli.NewArgParser(rest)

	app, cleanup := buildApp(args)
	defer cleanup()

	var code int
	switch cmd {
	case cli.CmdTUI:
		code = runTUI(app)
	case cli.CmdLogin:
		code = app.RunLogin(args)
	case cli.CmdRegister:
		code = app.RunRegister(args)
	case cli.CmdLogout:
		code = app.RunLogout()
	case cli.CmdSend:
		code = app.RunSend(args)
	case cli.CmdChat:
		code = app.RunChat(args)
	case cli.CmdStatus:
		code = app.RunStatus()
	case cli.CmdConfig:
		code = app.RunConfig(args)
	case cli.CmdVersion:
		code = app.RunVersion()
	case cli.CmdHelp:
		code = app.RunHelp()
	}
	os.Exit(code)
}

// buildApp wires the config, logger, credential store, API client,
// auth manager, and chat controller shared by every command.
func buildApp(args *cli.ArgParser) (*cli.App, func()) {
	cfg, err := config.Load()
	if err != nil {
		// A broken config file should not brick the binary.
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	if server := args.Flag("server"); server != "" {
		cfg.Server.URL = server
	}
	if args.BoolFlag("no-markdown") {
		cfg.UI.Markdown = false
	}
	config.SetGlobal(cfg)

	logger, closeLog := buildLogger(cfg)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Server.URL,
		Timeout: time.Duration(cfg.Server.TimeoutSecs) * time.Second,
	})

	store := openCredentialStore(logger)

	manager := auth.NewManager(client, store, logger)
	if _, err := manager.Restore(); err != nil {
		logger.Printf("session restore failed: %v", err)
	}

	controller := session.NewController(client, logger)

	app := &cli.App{
		Config:     cfg,
		Auth:       manager,
		Controller: controller,
		Logger:     logger,
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return app, cleanup
}

// buildLogger returns the diagnostic logger. Logging goes to a file in
// the config directory, never to the terminal the UI owns.
func buildLogger(cfg *config.Config) (*log.Logger, func()) {
	discard := log.New(io.Discard, "", 0)
	if !cfg.Log.Enabled {
		return discard, func() {}
	}

	path, err := cfg.LogPath()
	if err != nil {
		return discard, func() {}
	}
	if err := config.EnsureConfigDir(); err != nil {
		return discard, func() {}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return discard, func() {}
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }
}

// openCredentialStore opens the session database. A store failure is
// not fatal; the client just runs without persistence.
func openCredentialStore(logger *log.Logger) *storage.CredentialStore {
	path, err := config.CredentialStorePath()
	if err != nil {
		logger.Printf("credential store unavailable: %v", err)
		return nil
	}
	store, err := storage.OpenCredentialStore(path)
	if err != nil {
		logger.Printf("credential store unavailable: %v", err)
		return nil
	}
	return store
}

// =============================================================================
// TUI ROOT MODEL
// =============================================================================

// view selects which screen the root model shows.
type view int

const (
	viewLogin view = iota
	viewChat
)

// rootModel switches between the login form and the chat view.
type rootModel struct {
	app   *cli.App
	theme *styles.Theme

	current view
	login   login.Model
	chat    chat.Model

	width  int
	height int
}

func newRootModel(app *cli.App) rootModel {
	theme := styles.NewTheme()

	m := rootModel{
		app:   app,
		theme: theme,
		login: login.New(app.Auth, theme),
		chat:  chat.New(app.Controller, app.Auth, app.Config, theme),
	}
	if app.Auth.IsAuthenticated() {
		m.current = viewChat
	}
	return m
}

func (m rootModel) Init() tea.Cmd {
	if m.current == viewChat {
		return m.chat.Init()
	}
	return m.login.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Both views track the size so switching is seamless.
		var loginCmd, chatCmd tea.Cmd
		m.login, loginCmd = m.login.Update(msg)
		m.chat, chatCmd = m.chat.Update(msg)
		return m, tea.Batch(loginCmd, chatCmd)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && m.current == viewLogin {
			return m, tea.Quit
		}

	case login.AuthSuccessMsg:
		m.current = viewChat
		m.chat = chat.New(m.app.Controller, m.app.Auth, m.app.Config, m.theme)
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, tea.Batch(m.chat.Init(), cmd)

	case chat.LogoutRequestMsg:
		// Auth state is already cleared; drop the thread and show the form.
		m.app.Controller.Reset()
		m.current = viewLogin
		m.login = login.New(m.app.Auth, m.theme)
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, tea.Batch(m.login.Init(), cmd)

	case configReloadedMsg:
		m.app.Config = msg.cfg
		m.chat.ApplyConfig(msg.cfg)
		return m, nil
	}

	var cmd tea.Cmd
	if m.current == viewLogin {
		m.login, cmd = m.login.Update(msg)
	} else {
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m rootModel) View() string {
	if m.current == viewLogin {
		return m.login.View()
	}
	return m.chat.View()
}

// configReloadedMsg carries a live-reloaded config into the UI.
type configReloadedMsg struct {
	cfg *config.Config
}

// runTUI starts the Bubble Tea program with the config watcher wired.
func runTUI(app *cli.App) int {
	p := tea.NewProgram(newRootModel(app), tea.WithAltScreen())

	watcher := startConfigWatcher(app, p)
	if watcher != nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// startConfigWatcher reloads UI settings when the config file changes.
func startConfigWatcher(app *cli.App, p *tea.Program) *config.Watcher {
	path, err := config.ConfigPath()
	if err != nil {
		return nil
	}

	watcher, err := config.NewWatcher(path, func(cfg *config.Config) {
		p.Send(configReloadedMsg{cfg: cfg})
	})
	if err != nil {
		app.Logger.Printf("config watcher unavailable: %v", err)
		return nil
	}
	if err := watcher.Watch(); err != nil {
		app.Logger.Printf("config watcher unavailable: %v", err)
		watcher.Close()
		return nil
	}
	return watcher
}
