// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "strings"

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser gives every command one consistent way to read flags and
// positionals. Supported forms:
//
//	--flag value     long flag with space-separated value
//	--flag=value     long flag with equals sign
//	-f value         short flag with value
//	--flag           boolean flag
type ArgParser struct {
	subcommand string
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	raw        []string
}

// NewArgParser parses raw arguments. The first positional argument, if
// any, becomes the subcommand.
func NewArgParser(raw []string) *ArgParser {
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
		raw:       raw,
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]
		if !strings.HasPrefix(arg, "-") {
			p.positional = append(p.positional, arg)
			i++
			continue
		}

		if name, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "="); ok {
			// --flag=value; booleans may be explicit: --json=false
			if value == "true" || value == "false" {
				p.boolFlags[name] = value == "true"
			} else {
				p.flags[name] = value
			}
			i++
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.flags[name] = raw[i+1]
			i += 2
		} else {
			p.boolFlags[name] = true
			i++
		}
	}

	if len(p.positional) > 0 {
		p.subcommand = p.positional[0]
	}
	return p
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns the value of a string flag, or "".
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value, or def when unset.
func (p *ArgParser) FlagOrDefault(name, def string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return def
}

// BoolFlag returns the value of a boolean flag.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// HasFlag reports whether the flag was given in either form.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// Positional returns the positional argument at index, or "".
// Index 0 is the subcommand.
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns all positionals starting at index. Useful for
// joining the remainder into a message.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return nil
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}
