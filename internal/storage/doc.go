// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client-side state.
//
// Two concerns live here:
//
//   - CredentialStore: a small SQLite-backed key/value store holding the
//     current session credentials. The token is written on login, removed
//     on logout, and absent entirely when unauthenticated.
//   - Transcript export: rendering a conversation to Markdown and writing
//     it atomically (temp file + fsync + rename).
package storage
