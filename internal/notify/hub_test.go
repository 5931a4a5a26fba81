package notify

import (
	"testing"
	"time"
)

func TestHubDeliversToSubscriber(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe(1)
	defer cancel()

	h.Publish(1, "points_updated", map[string]int{"total": 120})

	select {
	case e := <-ch:
		if e.Type != "points_updated" {
			t.Errorf("event type = %q, want points_updated", e.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestHubIsolatesUsers(t *testing.T) {
	h := NewHub()

	ch1, cancel1 := h.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := h.Subscribe(2)
	defer cancel2()

	h.Publish(1, "streak_updated", nil)

	select {
	case <-ch1:
	case <-time.After(time.Second):
		t.Fatal("subscriber 1 never got the event")
	}

	select {
	case e := <-ch2:
		t.Errorf("subscriber 2 got unexpected event %+v", e)
	default:
	}
}

func TestHubFansOut(t *testing.T) {
	h := NewHub()

	ch1, cancel1 := h.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := h.Subscribe(1)
	defer cancel2()

	h.Publish(1, "achievement_unlocked", nil)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never got the event", i+1)
		}
	}
}

func TestHubDropsWhenSubscriberIsSlow(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe(1)
	defer cancel()

	// Overfill the buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer*2; i++ {
			h.Publish(1, "points_updated", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	if got := len(ch); got != sendBuffer {
		t.Errorf("buffered events = %d, want %d", got, sendBuffer)
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe(1)
	cancel()

	if n := h.Subscribers(1); n != 0 {
		t.Errorf("subscribers after cancel = %d, want 0", n)
	}

	// Channel is closed so a receive returns immediately.
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after cancel")
	}

	// Cancel twice is safe.
	cancel()
}
