package core

import (
	"context"
	"testing"
	"time"
)

func newTestHub(t *testing.T, rooms ...string) *Hub {
	t.Helper()

	if len(rooms) == 0 {
		rooms = []string{"General", "Academics"}
	}
	hub := NewHub(NewRoomDirectory(rooms), nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return hub
}

// mustEvent waits for the next event of the given kind, skipping others.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("event channel closed while waiting for kind %v", kind)
			}
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
		}
	}
}

// nextEvent returns the next event of any kind. Use it to prove that a
// dropped command emitted nothing: the following command's event must be
// the first one seen.
func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatalf("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("expected an event, got none")
	}
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, within time.Duration) {
	t.Helper()

	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("expected no event, got %+v", ev)
		}
	case <-time.After(within):
	}
}
