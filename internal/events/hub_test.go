package events

import (
	"testing"
	"time"
)

func TestHubDeliversToSameUserOnly(t *testing.T) {
	hub := NewHub(4)
	defer hub.Close()

	alice, cancelAlice := hub.Subscribe("alice")
	defer cancelAlice()
	bob, cancelBob := hub.Subscribe("bob")
	defer cancelBob()

	hub.Notify("alice", KindEntries)

	select {
	case c := <-alice:
		if c.Kind != KindEntries || c.UserID != "alice" || c.At.IsZero() {
			t.Errorf("unexpected change %+v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("alice did not receive the change")
	}

	select {
	case c := <-bob:
		t.Errorf("bob received %+v", c)
	default:
	}
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := NewHub(1)
	defer hub.Close()

	ch, cancel := hub.Subscribe("alice")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for range 100 {
			hub.Notify("alice", KindCategories)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	if got := len(ch); got != 1 {
		t.Errorf("queued = %d, want 1", got)
	}
}

func TestHubCancelAndClose(t *testing.T) {
	hub := NewHub(0)

	ch, cancel := hub.Subscribe("alice")
	if hub.Subscribers("alice") != 1 {
		t.Fatalf("Subscribers = %d, want 1", hub.Subscribers("alice"))
	}
	cancel()
	cancel()
	if hub.Subscribers("alice") != 0 {
		t.Errorf("Subscribers after cancel = %d, want 0", hub.Subscribers("alice"))
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}

	other, cancelOther := hub.Subscribe("bob")
	hub.Close()
	if _, ok := <-other; ok {
		t.Error("channel should be closed after hub close")
	}
	cancelOther()

	late, _ := hub.Subscribe("carol")
	if _, ok := <-late; ok {
		t.Error("subscribing to a closed hub should return a closed channel")
	}
	hub.Notify("bob", KindNotes)
}
