// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Concierge"
	default:
		return string(r)
	}
}

// =============================================================================
// STATUS TYPE
// =============================================================================

// Status is a message's delivery state. A user message starts Pending when
// appended optimistically and resolves to Delivered or Failed when the send
// completes. Assistant messages are created already resolved.
type Status int

const (
	StatusPending Status = iota
	StatusDelivered
	StatusFailed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDelivered:
		return "delivered"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// Messages are append-only: Content, Role, and Timestamp never change after
// creation. The only legal mutation is the Pending -> Delivered/Failed
// status transition on an optimistically appended user message.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"` // monotonically increasing within a conversation
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Delivery state
	Status Status `json:"status"`
}

// NewUserMessage creates a user message in the Pending state.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		Status:    StatusPending,
	}
}

// NewAssistantMessage creates a delivered assistant message.
func NewAssistantMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Status:    StatusDelivered,
	}
}

// NewErrorMessage creates a failed assistant message carrying the
// user-facing fallback text for an undeliverable send.
func NewErrorMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Status:    StatusFailed,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// MarkDelivered resolves a pending message as delivered.
func (m *Message) MarkDelivered() {
	if m.Status == StatusPending {
		m.Status = StatusDelivered
	}
}

// MarkFailed resolves a pending message as failed.
func (m *Message) MarkFailed() {
	if m.Status == StatusPending {
		m.Status = StatusFailed
	}
}

// IsError returns true for a failed assistant message (a delivery error
// rendered inline in the thread).
func (m *Message) IsError() bool {
	return m.Role == RoleAssistant && m.Status == StatusFailed
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
