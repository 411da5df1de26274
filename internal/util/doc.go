// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the concierge client.
//
// String Utilities:
//   - TruncateRunes / TruncateWidth: UTF-8 and column-width safe truncation
//   - NormalizeInput: trim + NFC normalization for user-typed text
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
