// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - status command handler.

package cli

import (
	"fmt"

	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// RunStatus prints the server URL, session state, and current
// conversation summary.
func (a *App) RunStatus() int {
	fmt.Println(infoStyle().Render("Server:   ") + a.Config.Server.URL)

	if sess := a.Auth.Current(); sess != nil {
		fmt.Println(infoStyle().Render("Session:  ") +
			successStyle().Render(styles.StatusIndicators.Active+" signed in as "+sess.Username))
	} else {
		fmt.Println(infoStyle().Render("Session:  ") +
			errorStyle().Render(styles.StatusIndicators.Warning+" not signed in"))
	}

	conv := a.Controller.Conversation()
	if conv.IsEmpty() {
		fmt.Println(infoStyle().Render("Chat:     no messages this session"))
	} else {
		fmt.Printf("%s%d messages", infoStyle().Render("Chat:     "), conv.MessageCount())
		if conv.ChatSessionID != "" {
			fmt.Printf(" (session %s)", conv.ChatSessionID)
		}
		fmt.Println()
	}

	return 0
}
