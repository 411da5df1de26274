// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: ordered message history plus the backend-assigned
//     chat session id (set once, first assignment wins)
//   - Message: single message with role, content, timestamp, and delivery
//     status (Pending, Delivered, Failed)
//   - Role: message sender enumeration (user, assistant)
//
// # Usage
//
// Create a new conversation and append messages:
//
//	conv := model.NewConversation()
//	msg := conv.AddUserMessage("Hello!")
//	// ... send completes ...
//	msg.MarkDelivered()
//	conv.AddAssistantMessage("Hi there")
package model
