// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jeranaias/concierge-tui/internal/api"
	"github.com/jeranaias/concierge-tui/internal/model"
	"github.com/jeranaias/concierge-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage is returned when the trimmed message text is empty.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight is returned when a send is already outstanding.
	// The attempt is refused, not queued; the conversation is untouched.
	ErrSendInFlight = errors.New("a send is already in flight")

	// ErrNoPendingSend is returned by Complete when Begin was not called.
	ErrNoPendingSend = errors.New("no send in progress")
)

// failedReplyText is the fixed user-facing content of the error message
// appended when a send fails for any reason. The raw error is only logged.
const failedReplyText = "Sorry, something went wrong while processing your message. Please try again."

// FailedReplyText returns the fixed fallback text for failed sends.
func FailedReplyText() string {
	return failedReplyText
}

// =============================================================================
// CONTROLLER
// =============================================================================

// state is the controller's send state machine: idle -> sending -> idle.
type state int

const (
	stateIdle state = iota
	stateSending
)

// Controller owns one Conversation and the send protocol against the
// backend. All mutations of the conversation go through it.
//
// The Controller is safe for concurrent use. Readers never see the live
// conversation: Conversation returns a snapshot taken under the lock, so
// rendering can proceed while Complete appends from another goroutine.
type Controller struct {
	client *api.Client
	logger *log.Logger

	mu      sync.Mutex
	state   state
	conv    *model.Conversation
	pending *model.Message // the optimistic user message of the in-flight send
}

// NewController creates a controller with a fresh, empty conversation.
// logger may be nil to discard diagnostics.
func NewController(client *api.Client, logger *log.Logger) *Controller {
	return &Controller{
		client: client,
		logger: logger,
		conv:   model.NewConversation(),
	}
}

// Conversation returns a deep snapshot of the controller's conversation.
// The snapshot is safe to read while a send is in flight; mutating it has
// no effect on the controller.
func (c *Controller) Conversation() *model.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Clone()
}

// Reset replaces the conversation with a fresh empty one. Refused while a
// send is in flight.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateIdle {
		return ErrSendInFlight
	}
	c.conv = model.NewConversation()
	return nil
}

// CanSend reports whether a new send would be accepted right now.
func (c *Controller) CanSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateIdle
}

// Busy reports whether a send is in flight. Drives the typing indicator.
func (c *Controller) Busy() bool {
	return !c.CanSend()
}

// =============================================================================
// SEND PROTOCOL
// =============================================================================

// Outcome is the result of a completed send, for rendering.
type Outcome struct {
	// UserMessage is the optimistic message, now Delivered or Failed.
	UserMessage *model.Message
	// Reply is the appended assistant message (real reply, or the fixed
	// error message when Failed is set).
	Reply *model.Message
	// Failed is true when the send did not reach the assistant.
	Failed bool
}

// Begin starts a send: it validates and normalizes text, acquires the
// single-flight slot, and appends the optimistic Pending user message.
// The appended message is visible to renderers before any network I/O.
//
// On ErrEmptyMessage or ErrSendInFlight the conversation is unchanged.
func (c *Controller) Begin(text string) (*model.Message, error) {
	text = util.NormalizeInput(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateIdle {
		return nil, ErrSendInFlight
	}

	c.state = stateSending
	c.pending = c.conv.AddUserMessage(text)
	return c.pending, nil
}

// Complete performs the network half of a send started by Begin: it
// issues the request with the conversation's current chat session id and
// reconciles the result.
//
// On success the backend-assigned chat session id is adopted (first
// assignment wins), the assistant reply is appended Delivered, and the
// user message is marked Delivered. On any failure exactly one Failed
// assistant message with the fixed fallback text is appended and the user
// message is marked Failed. The sending slot is released either way.
func (c *Controller) Complete(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	if c.state != stateSending || c.pending == nil {
		c.mu.Unlock()
		return nil, ErrNoPendingSend
	}
	userMsg := c.pending
	chatSessionID := c.conv.ChatSessionID
	c.mu.Unlock()

	// Network I/O happens outside the lock; the single-flight rule keeps
	// the conversation stable meanwhile.
	resp, err := c.client.SendMessage(ctx, userMsg.Content, chatSessionID)

	c.mu.Lock()
	defer func() {
		// The slot is always released, success or failure.
		c.pending = nil
		c.state = stateIdle
		c.mu.Unlock()
	}()

	if err != nil {
		c.logf("send failed: %v", err)
		userMsg.MarkFailed()
		reply := c.conv.AddErrorMessage(failedReplyText)
		return &Outcome{UserMessage: userMsg, Reply: reply, Failed: true}, nil
	}

	c.conv.AdoptChatSession(resp.ChatSessionID)
	userMsg.MarkDelivered()
	reply := c.conv.AddAssistantMessage(resp.Reply)
	return &Outcome{UserMessage: userMsg, Reply: reply}, nil
}

// Send runs Begin and Complete as one call, for non-interactive callers
// (the one-shot CLI and the REPL) that don't render the optimistic phase
// separately.
func (c *Controller) Send(ctx context.Context, text string) (*Outcome, error) {
	if _, err := c.Begin(text); err != nil {
		return nil, err
	}
	return c.Complete(ctx)
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
