package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/core/domain"
)

func testClient() *Client {
	return newClient(nil, zerolog.Nop())
}

func recvFrame(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case frame := <-c.send:
		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		return env
	case <-time.After(time.Second):
		t.Fatalf("no frame received within 1s")
		return Envelope{}
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case frame := <-c.send:
		t.Fatalf("unexpected frame: %s", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

// ---------------------------------------------------------------------------
// Registry semantics
// ---------------------------------------------------------------------------

func TestHub_RegisterLookupUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient()

	if _, ok := hub.Lookup("u1"); ok {
		t.Fatalf("lookup on empty hub should miss")
	}

	hub.Register("u1", c)
	got, ok := hub.Lookup("u1")
	if !ok || got != c {
		t.Fatalf("lookup after register: ok=%v", ok)
	}

	hub.Unregister(c)
	if _, ok := hub.Lookup("u1"); ok {
		t.Fatalf("lookup after unregister should miss")
	}
}

func TestHub_RegisterIdempotent(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient()

	hub.Register("u1", c)
	hub.Register("u1", c)

	got, ok := hub.Lookup("u1")
	if !ok || got != c {
		t.Fatalf("double register changed observable state")
	}
	// The client registered twice with itself must not be closed.
	select {
	case <-c.done:
		t.Fatalf("client closed by idempotent re-register")
	default:
	}
}

func TestHub_RegisterSupersedes(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	first := testClient()
	second := testClient()

	hub.Register("u1", first)
	hub.Register("u1", second)

	got, ok := hub.Lookup("u1")
	if !ok || got != second {
		t.Fatalf("later registration should win")
	}
	select {
	case <-first.done:
	default:
		t.Fatalf("superseded connection should be closed")
	}

	// Unregistering the stale handle must not evict the new one.
	hub.Unregister(first)
	if _, ok := hub.Lookup("u1"); !ok {
		t.Fatalf("unregister of superseded handle evicted the live one")
	}
}

func TestHub_LateBindingRegister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient()

	// A connection can be re-bound under a second id (explicit register
	// event); unregister by handle clears every binding it holds.
	hub.Register("u1", c)
	hub.Register("u2", c)
	hub.Unregister(c)

	if _, ok := hub.Lookup("u1"); ok {
		t.Fatalf("u1 still registered")
	}
	if _, ok := hub.Lookup("u2"); ok {
		t.Fatalf("u2 still registered")
	}
}

// ---------------------------------------------------------------------------
// Push
// ---------------------------------------------------------------------------

func TestHub_PushToConnected(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := testClient()
	hub.Register("u1", c)

	msg := &domain.Message{ID: "m1", SenderID: "a", ReceiverID: "u1", Content: "hi"}
	if !hub.Push("u1", EventReceiveMessage, msg) {
		t.Fatalf("push to connected user should succeed")
	}

	env := recvFrame(t, c)
	if env.Event != EventReceiveMessage {
		t.Fatalf("event: %q", env.Event)
	}
	var got domain.Message
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.Content != "hi" || got.SenderID != "a" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestHub_PushOfflineIsMiss(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	if hub.Push("nobody", EventReceiveMessage, &domain.Message{ID: "m1"}) {
		t.Fatalf("push to offline user should report false")
	}
}

// ---------------------------------------------------------------------------
// Dispatcher fan-out
// ---------------------------------------------------------------------------

func TestDispatcher_DeliversBothEvents(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	receiver := testClient()
	hub.Register("b", receiver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(1, hub, zerolog.Nop())
	d.Start(ctx)

	msg := &domain.Message{ID: "m1", SenderID: "a", ReceiverID: "b", Content: "hello", CreatedAt: time.Now().UTC()}
	d.Deliver(msg, "Alice")

	first := recvFrame(t, receiver)
	if first.Event != EventReceiveMessage {
		t.Fatalf("first event: %q", first.Event)
	}

	second := recvFrame(t, receiver)
	if second.Event != EventNotification {
		t.Fatalf("second event: %q", second.Event)
	}
	var note Notification
	if err := json.Unmarshal(second.Data, &note); err != nil {
		t.Fatalf("notification payload: %v", err)
	}
	if note.ID != "m1" || note.Type != "new_message" || note.SenderID != "a" {
		t.Fatalf("unexpected notification: %+v", note)
	}
	if note.Message != "New message from Alice" {
		t.Fatalf("notification text: %q", note.Message)
	}
}

func TestDispatcher_OfflineReceiverSilent(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	bystander := testClient()
	hub.Register("c", bystander)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(1, hub, zerolog.Nop())
	d.Start(ctx)

	d.Deliver(&domain.Message{ID: "m1", SenderID: "a", ReceiverID: "offline"}, "Alice")

	// Nothing is emitted anywhere: not to the missing receiver, not to
	// anyone else.
	assertNoFrame(t, bystander)
}

func TestNotificationFallbackSenderName(t *testing.T) {
	note := newMessageNotification(&domain.Message{ID: "m1", SenderID: "a"}, "")
	if note.Message != "New message from someone" {
		t.Fatalf("fallback text: %q", note.Message)
	}
}
