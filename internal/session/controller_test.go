// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jeranaias/concierge-tui/internal/api"
	"github.com/jeranaias/concierge-tui/internal/model"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// chatBackend answers /chat/ with a canned reply and records requests.
type chatBackend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []api.ChatRequest
	reply    string
	session  string
	fail     bool

	// release, when non-nil, blocks the handler until closed. Used to hold
	// a send in flight.
	release chan struct{}
}

func newChatBackend(t *testing.T) *chatBackend {
	t.Helper()
	cb := &chatBackend{reply: "Hi there", session: "s1"}
	cb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.ChatRequest
		json.NewDecoder(r.Body).Decode(&req)

		cb.mu.Lock()
		cb.requests = append(cb.requests, req)
		release := cb.release
		fail := cb.fail
		reply, session := cb.reply, cb.session
		cb.mu.Unlock()

		if release != nil {
			<-release
		}
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(api.ChatResponse{Reply: reply, ChatSessionID: session})
	}))
	t.Cleanup(cb.Close)
	return cb
}

func (cb *chatBackend) lastRequest() api.ChatRequest {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.requests[len(cb.requests)-1]
}

func (cb *chatBackend) requestCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return len(cb.requests)
}

func newTestController(t *testing.T, baseURL string) *Controller {
	t.Helper()
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: baseURL})
	return NewController(client, nil)
}

// =============================================================================
// BEGIN TESTS
// =============================================================================

func TestController_Begin_EmptyMessage(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := ctrl.Begin(text)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Begin(%q) = %v, want ErrEmptyMessage", text, err)
		}
	}

	if ctrl.Conversation().MessageCount() != 0 {
		t.Error("rejected Begin must leave the conversation unchanged")
	}
	if !ctrl.CanSend() {
		t.Error("controller should remain idle after rejected Begin")
	}
}

func TestController_Begin_OptimisticAppend(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	msg, err := ctrl.Begin("  Hello  ")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	// Pending user message is visible before any network call resolves.
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want trimmed 'Hello'", msg.Content)
	}
	if msg.Status != model.StatusPending {
		t.Errorf("Status = %v, want pending", msg.Status)
	}
	if msg.Role != model.RoleUser {
		t.Errorf("Role = %v, want user", msg.Role)
	}
	if ctrl.Conversation().MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", ctrl.Conversation().MessageCount())
	}
	if backend.requestCount() != 0 {
		t.Error("Begin must not touch the network")
	}
	if ctrl.CanSend() {
		t.Error("controller should be sending after Begin")
	}
	if !ctrl.Busy() {
		t.Error("Busy should be true while a send is in flight")
	}
}

func TestController_Begin_SingleFlight(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	if _, err := ctrl.Begin("first"); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	before := ctrl.Conversation().MessageCount()

	// Second send while one is in flight is refused, not queued.
	_, err := ctrl.Begin("second")
	if !errors.Is(err, ErrSendInFlight) {
		t.Errorf("Begin = %v, want ErrSendInFlight", err)
	}
	if ctrl.Conversation().MessageCount() != before {
		t.Error("refused send must leave message count unchanged")
	}
}

// =============================================================================
// COMPLETE TESTS
// =============================================================================

func TestController_Complete_WithoutBegin(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	if _, err := ctrl.Complete(context.Background()); !errors.Is(err, ErrNoPendingSend) {
		t.Errorf("Complete = %v, want ErrNoPendingSend", err)
	}
}

func TestController_SendSuccess(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	outcome, err := ctrl.Send(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if outcome.Failed {
		t.Error("outcome should not be failed")
	}
	if outcome.UserMessage.Status != model.StatusDelivered {
		t.Errorf("user message status = %v, want delivered", outcome.UserMessage.Status)
	}
	if outcome.Reply.Content != "Hi there" {
		t.Errorf("reply = %q, want 'Hi there'", outcome.Reply.Content)
	}

	conv := ctrl.Conversation()
	if conv.ChatSessionID != "s1" {
		t.Errorf("ChatSessionID = %q, want s1", conv.ChatSessionID)
	}
	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[0].Role != model.RoleUser || conv.Messages[0].Content != "Hello" {
		t.Error("first message should be user/'Hello'")
	}
	if conv.Messages[1].Role != model.RoleAssistant || conv.Messages[1].Content != "Hi there" {
		t.Error("second message should be assistant/'Hi there'")
	}
	if !ctrl.CanSend() {
		t.Error("controller should be idle after a completed send")
	}
}

func TestController_SendFailure(t *testing.T) {
	backend := newChatBackend(t)
	backend.fail = true
	ctrl := newTestController(t, backend.URL)

	outcome, err := ctrl.Send(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if !outcome.Failed {
		t.Error("outcome should be failed")
	}
	if outcome.UserMessage.Status != model.StatusFailed {
		t.Errorf("user message status = %v, want failed", outcome.UserMessage.Status)
	}
	if outcome.Reply.Content != FailedReplyText() {
		t.Errorf("reply = %q, want fixed fallback text", outcome.Reply.Content)
	}
	if !outcome.Reply.IsError() {
		t.Error("reply should be an error message")
	}

	conv := ctrl.Conversation()
	// Exactly one failed assistant message; prior messages intact.
	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[0].Content != "Hello" {
		t.Error("optimistic user message must remain intact")
	}
	if conv.ChatSessionID != "" {
		t.Errorf("ChatSessionID = %q, want unset after failure", conv.ChatSessionID)
	}
	if !ctrl.CanSend() {
		t.Error("sending slot must be released after failure")
	}
}

func TestController_NetworkFailure(t *testing.T) {
	backend := newChatBackend(t)
	url := backend.URL
	backend.Close()
	ctrl := newTestController(t, url)

	outcome, err := ctrl.Send(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if !outcome.Failed {
		t.Error("outcome should be failed on network error")
	}
	conv := ctrl.Conversation()
	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[1].Content != FailedReplyText() {
		t.Errorf("error message = %q, want fixed fallback", conv.Messages[1].Content)
	}
	if conv.ChatSessionID != "" {
		t.Error("ChatSessionID must remain unset after network failure")
	}
}

// =============================================================================
// CHAT SESSION ID TESTS
// =============================================================================

func TestController_ChatSessionID_SentOnSubsequentSends(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	if _, err := ctrl.Send(context.Background(), "first"); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	// First request carries no session id.
	if got := backend.requests[0].ChatSessionID; got != "" {
		t.Errorf("first request ChatSessionID = %q, want empty", got)
	}

	if _, err := ctrl.Send(context.Background(), "second"); err != nil {
		t.Fatalf("second send failed: %v", err)
	}
	if got := backend.lastRequest().ChatSessionID; got != "s1" {
		t.Errorf("second request ChatSessionID = %q, want s1", got)
	}
}

func TestController_ChatSessionID_FirstWins(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	if _, err := ctrl.Send(context.Background(), "first"); err != nil {
		t.Fatalf("first send failed: %v", err)
	}

	// Backend rotates the id; the conversation keeps the original.
	backend.mu.Lock()
	backend.session = "s2"
	backend.mu.Unlock()

	if _, err := ctrl.Send(context.Background(), "second"); err != nil {
		t.Fatalf("second send failed: %v", err)
	}
	if got := ctrl.Conversation().ChatSessionID; got != "s1" {
		t.Errorf("ChatSessionID = %q, want s1 (first assignment wins)", got)
	}
}

// =============================================================================
// RESET TESTS
// =============================================================================

func TestController_Reset(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	ctrl.Send(context.Background(), "Hello")
	old := ctrl.Conversation()

	if err := ctrl.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	conv := ctrl.Conversation()
	if conv.ID == old.ID {
		t.Error("Reset should produce a fresh conversation")
	}
	if !conv.IsEmpty() || conv.ChatSessionID != "" {
		t.Error("fresh conversation should be empty with no session id")
	}
}

func TestController_Reset_RefusedWhileSending(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	if _, err := ctrl.Begin("hello"); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := ctrl.Reset(); !errors.Is(err, ErrSendInFlight) {
		t.Errorf("Reset = %v, want ErrSendInFlight", err)
	}
}

// =============================================================================
// CONCURRENCY TESTS
// =============================================================================

func TestController_ConversationSnapshot_SafeDuringSend(t *testing.T) {
	backend := newChatBackend(t)
	backend.release = make(chan struct{})
	ctrl := newTestController(t, backend.URL)

	if _, err := ctrl.Begin("hello"); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	done := make(chan *Outcome, 1)
	go func() {
		outcome, _ := ctrl.Complete(context.Background())
		done <- outcome
	}()

	// Render-style reads while the send is held in flight. The snapshot
	// must be stable against the appends Complete makes on completion.
	for i := 0; i < 100; i++ {
		conv := ctrl.Conversation()
		if conv.MessageCount() != 1 {
			t.Fatalf("MessageCount = %d during send, want 1", conv.MessageCount())
		}
		for _, msg := range conv.Messages {
			_ = msg.Status
			_ = msg.Content
		}
	}

	close(backend.release)
	outcome := <-done
	if outcome == nil || outcome.Failed {
		t.Fatalf("send should have succeeded, got %+v", outcome)
	}

	if got := ctrl.Conversation().MessageCount(); got != 2 {
		t.Errorf("MessageCount = %d after send, want 2", got)
	}
}

func TestController_SnapshotIsolation(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	if _, err := ctrl.Send(context.Background(), "Hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	// Mutating a snapshot must not leak into the controller's state.
	snap := ctrl.Conversation()
	snap.Messages[0].Content = "tampered"
	snap.AddUserMessage("extra")

	conv := ctrl.Conversation()
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[0].Content != "Hello" {
		t.Error("snapshot mutation must not reach the controller's conversation")
	}
}

func TestController_ConcurrentBegin_OnlyOneWins(t *testing.T) {
	backend := newChatBackend(t)
	ctrl := newTestController(t, backend.URL)

	const goroutines = 16
	var wg sync.WaitGroup
	var accepted int64
	var mu sync.Mutex

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ctrl.Begin("race"); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Errorf("accepted = %d Begin calls, want exactly 1", accepted)
	}
	if ctrl.Conversation().MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", ctrl.Conversation().MessageCount())
	}
}
