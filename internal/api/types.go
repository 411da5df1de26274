// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoginRequest is the body for POST /users/login_user.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /users/.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

// ChatRequest is the body for POST /chat/.
// ChatSessionID is omitted on the first send of a conversation; the backend
// assigns one and returns it in the reply.
type ChatRequest struct {
	Message       string `json:"message"`
	ChatSessionID string `json:"chat_session_id,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

// ChatResponse is the body of a successful send.
type ChatResponse struct {
	Reply         string `json:"reply"`
	ChatSessionID string `json:"chat_session_id"`
}

// errorBody is the backend's error payload shape for non-2xx responses.
type errorBody struct {
	Detail string `json:"detail"`
}
