// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound      = errors.New("credential not found")
	ErrStoreClosed   = errors.New("credential store is closed")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// WELL-KNOWN KEYS
// =============================================================================

// Keys under which the current session is persisted. All three are written
// together on login and removed together on logout.
const (
	KeySessionToken = "session_token"
	KeyUserID       = "user_id"
	KeyUsername     = "username"
)

// =============================================================================
// SCHEMA
// =============================================================================

const credentialSchema = `
CREATE TABLE IF NOT EXISTS credentials (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
) WITHOUT ROWID;
`

// =============================================================================
// CREDENTIAL STORE
// =============================================================================

// CredentialStore is a durable key/value store for session credentials,
// backed by a single-file SQLite database.
type CredentialStore struct {
	db *sql.DB
}

// OpenCredentialStore opens (creating if necessary) the store at path.
func OpenCredentialStore(path string) (*CredentialStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}

	if _, err := db.Exec(credentialSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return &CredentialStore{db: db}, nil
}

// Put stores or replaces a value under key.
func (s *CredentialStore) Put(key, value string) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.Exec(
		`INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *CredentialStore) Get(key string) (string, error) {
	if s.db == nil {
		return "", ErrStoreClosed
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return value, nil
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error; logout must succeed even when nothing is persisted.
func (s *CredentialStore) Delete(key string) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Clear removes every stored credential.
func (s *CredentialStore) Clear() error {
	if s.db == nil {
		return ErrStoreClosed
	}
	if _, err := s.db.Exec(`DELETE FROM credentials`); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *CredentialStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
