// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds one chat thread: the ordered message history plus the
// backend-assigned chat session identifier.
//
// Messages appear in append order; they are never removed or reordered.
// ChatSessionID starts empty and is set at most once (see AdoptChatSession).
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Backend correlation id, assigned on the first successful reply.
	ChatSessionID string `json:"chat_session_id,omitempty"`

	// Messages
	Messages []*Message `json:"messages"`

	nextSeq int64
}

// NewConversation creates a new empty conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message, assigning it the next sequence number.
func (c *Conversation) AddMessage(msg *Message) {
	c.nextSeq++
	msg.Seq = c.nextSeq
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
}

// AddUserMessage creates and appends a pending user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage creates and appends a delivered assistant message.
func (c *Conversation) AddAssistantMessage(content string) *Message {
	msg := NewAssistantMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddErrorMessage creates and appends a failed assistant message.
func (c *Conversation) AddErrorMessage(content string) *Message {
	msg := NewErrorMessage(content)
	c.AddMessage(msg)
	return msg
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// GetLastUserMessage returns the most recent user message.
func (c *Conversation) GetLastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// GetMessageByID returns a message by its ID.
func (c *Conversation) GetMessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// GetHistory returns the message history for display.
func (c *Conversation) GetHistory() []*Message {
	return c.Messages
}

// =============================================================================
// CHAT SESSION ID
// =============================================================================

// AdoptChatSession records the backend-assigned chat session id.
// First assignment wins: once set, later ids are ignored, even if they
// differ. Returns true if the id was adopted.
func (c *Conversation) AdoptChatSession(id string) bool {
	if id == "" || c.ChatSessionID != "" {
		return false
	}
	c.ChatSessionID = id
	c.UpdatedAt = time.Now()
	return true
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user message if not set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			c.Title = msg.Preview(50)
			return
		}
	}
}

// SetTitle manually sets the conversation title.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Conversation"
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:            c.ID,
		Title:         c.Title,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		ChatSessionID: c.ChatSessionID,
		Messages:      make([]*Message, len(c.Messages)),
		nextSeq:       c.nextSeq,
	}

	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}

	return clone
}
