// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config command handler.
//
// Examples:
//   concierge config show
//   concierge config get ui.theme
//   concierge config set ui.theme light
//   concierge config path

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/concierge-tui/internal/config"
)

// RunConfig handles the config subcommands.
func (a *App) RunConfig(args *ArgParser) int {
	switch args.Subcommand() {
	case "", "show":
		return a.configShow()
	case "get":
		return a.configGet(args.Positional(1))
	case "set":
		return a.configSet(args.Positional(1), args.Positional(2))
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return a.fail(err)
		}
		fmt.Println(path)
		return 0
	default:
		return a.fail(errors.New("unknown config subcommand " + args.Subcommand() + " (show|get|set|path)"))
	}
}

func (a *App) configShow() int {
	for _, key := range config.GetAllKeys() {
		val, err := a.Config.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s = %v\n", infoStyle().Render(key), val)
	}
	return 0
}

func (a *App) configGet(key string) int {
	if key == "" {
		return a.fail(errors.New("usage: concierge config get <key>"))
	}
	val, err := a.Config.Get(key)
	if err != nil {
		return a.fail(err)
	}
	fmt.Printf("%v\n", val)
	return 0
}

func (a *App) configSet(key, value string) int {
	if key == "" || value == "" {
		return a.fail(errors.New("usage: concierge config set <key> <value>"))
	}

	if err := a.Config.Set(key, value); err != nil {
		return a.fail(err)
	}
	if err := a.Config.Validate(); err != nil {
		return a.fail(err)
	}
	if err := config.Save(a.Config); err != nil {
		return a.fail(err)
	}

	fmt.Println(successStyle().Render(key + " = " + value))
	return 0
}
