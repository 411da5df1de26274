// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeInput prepares user-typed text for the wire: trims surrounding
// whitespace and applies NFC normalization so composed and decomposed forms
// of the same character compare equal downstream.
func NormalizeInput(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
