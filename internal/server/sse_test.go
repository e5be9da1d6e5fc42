package server

import (
	"testing"
	"time"
)

func TestSSEHub_BroadcastAndReceive(t *testing.T) {
	hub := newSSEHub()

	client := hub.subscribe(nil) // all topics
	defer hub.unsubscribe(client)

	hub.broadcast("brewlog.brew.created", []byte(`{"brew_id":"brew-1"}`))

	select {
	case evt := <-client.ch:
		if evt.Topic != "brewlog.brew.created" {
			t.Fatalf("topic = %q", evt.Topic)
		}
		if string(evt.Data) != `{"brew_id":"brew-1"}` {
			t.Fatalf("data = %q", string(evt.Data))
		}
		if evt.ID != 1 {
			t.Fatalf("id = %d, want 1", evt.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSSEHub_TopicFiltering(t *testing.T) {
	hub := newSSEHub()

	client := hub.subscribe([]string{"brewlog.brew.*"})
	defer hub.unsubscribe(client)

	hub.broadcast("brewlog.slot.added", []byte(`{}`))
	hub.broadcast("brewlog.brew.created", []byte(`{}`))

	select {
	case evt := <-client.ch:
		if evt.Topic != "brewlog.brew.created" {
			t.Fatalf("topic = %q, slot event should have been filtered", evt.Topic)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case evt := <-client.ch:
		t.Fatalf("unexpected extra event %q", evt.Topic)
	default:
	}
}

func TestSSEHub_Replay(t *testing.T) {
	hub := newSSEHub()
	hub.broadcast("brewlog.brew.created", []byte(`{"n":1}`))
	hub.broadcast("brewlog.brew.updated", []byte(`{"n":2}`))
	hub.broadcast("brewlog.brew.archived", []byte(`{"n":3}`))

	missed := hub.eventsSince(1)
	if len(missed) != 2 {
		t.Fatalf("eventsSince(1) returned %d events, want 2", len(missed))
	}
	if missed[0].ID != 2 || missed[1].ID != 3 {
		t.Errorf("replay order: %d, %d", missed[0].ID, missed[1].ID)
	}

	if got := hub.eventsSince(3); got != nil {
		t.Errorf("eventsSince(3) = %v, want nil", got)
	}
}

func TestMatchTopicPattern(t *testing.T) {
	for _, tc := range []struct {
		pattern, topic string
		want           bool
	}{
		{"brewlog.brew.created", "brewlog.brew.created", true},
		{"brewlog.brew.*", "brewlog.brew.created", true},
		{"brewlog.brew.*", "brewlog.slot.added", false},
		{"brewlog.>", "brewlog.brew.created", true},
		{"brewlog.>", "brewlog", false},
		{"*.brew.created", "brewlog.brew.created", true},
		{"brewlog.brew", "brewlog.brew.created", false},
	} {
		if got := matchTopicPattern(tc.pattern, tc.topic); got != tc.want {
			t.Errorf("matchTopicPattern(%q, %q) = %v, want %v", tc.pattern, tc.topic, got, tc.want)
		}
	}
}
