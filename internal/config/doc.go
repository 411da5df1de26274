// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for concierge.
//
// Configuration is TOML at ~/.concierge/config.toml. Precedence, lowest to
// highest: built-in defaults, the config file, CONCIERGE_* environment
// variables. The loaded config is validated before use.
//
// A Watcher can reload the file when it changes on disk, so UI settings
// apply without restarting the client.
//
// # Usage
//
//	cfg := config.Global()
//	fmt.Println(cfg.Server.URL)
//
//	// Change and persist a setting
//	cfg.Set("ui.theme", "light")
//	config.Save(cfg)
package config
