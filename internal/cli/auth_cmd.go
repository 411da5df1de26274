// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, register, and logout command handlers.
//
// Examples:
//   concierge login                    Prompt for username and password
//   concierge login --user alice       Prompt for password only
//   concierge register --user alice    Create an account, then sign in
//   concierge logout                   Sign out and clear stored state

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const authCmdTimeout = 45 * time.Second

// RunLogin signs in and persists the session for later commands.
func (a *App) RunLogin(args *ArgParser) int {
	username, password, err := a.promptCredentials(args)
	if err != nil {
		return a.fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), authCmdTimeout)
	defer cancel()

	sess, err := a.Auth.Login(ctx, username, password)
	if err != nil {
		return a.fail(err)
	}

	fmt.Println(successStyle().Render("Signed in as " + sess.Username))
	return 0
}

// RunRegister creates an account and signs in.
func (a *App) RunRegister(args *ArgParser) int {
	username, password, err := a.promptCredentials(args)
	if err != nil {
		return a.fail(err)
	}

	fullname := args.Flag("fullname")
	if fullname == "" {
		fullname, err = a.promptLine("Full name: ")
		if err != nil {
			return a.fail(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), authCmdTimeout)
	defer cancel()

	sess, err := a.Auth.Register(ctx, username, password, fullname)
	if err != nil {
		return a.fail(err)
	}

	fmt.Println(successStyle().Render("Account created. Signed in as " + sess.Username))
	return 0
}

// RunLogout signs out. Local state is cleared even when the backend
// call fails.
func (a *App) RunLogout() int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.Auth.Logout(ctx)
	fmt.Println(infoStyle().Render("Signed out."))
	return 0
}

// promptCredentials resolves username and password from flags or
// interactive prompts. Password entry is always masked.
func (a *App) promptCredentials(args *ArgParser) (username, password string, err error) {
	username = args.FlagOrDefault("user", args.Flag("username"))
	if username == "" {
		if err := RequiresTTY("enter a username"); err != nil {
			return "", "", err
		}
		username, err = a.promptLine("Username: ")
		if err != nil {
			return "", "", err
		}
	}

	if err := RequiresTTY("enter a password"); err != nil {
		return "", "", err
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("reading password: %w", err)
	}

	return strings.TrimSpace(username), string(raw), nil
}

func (a *App) promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
