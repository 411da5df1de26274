// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the concierge backend.
//
// The client is a thin request layer over the backend's JSON contract:
//
//	POST /users/login_user  {username, password}            -> {user_id, username, session_token}
//	POST /users/            {username, password, fullname}  -> (success only)
//	POST /users/logout      (token via Authorization header)
//	POST /chat/             {message, chat_session_id?}     -> {reply, chat_session_id}
//
// Every non-2xx response is normalized into an *APIError carrying the
// backend's "detail" field, or a fixed per-operation fallback when the body
// is missing or unparseable. Transport failures become a *ClientError.
// Callers never see raw transport errors, and the client never retries.
package api
