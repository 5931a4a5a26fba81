package notify

import (
	"log"
	"sync"
	"time"

	"github.com/english-learn/backend/internal/metrics"
)

// Event is one realtime notification delivered to a user's open
// connections: point totals changing, streak updates, achievement
// unlocks.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// sendBuffer is how many undelivered events a subscriber may queue
// before the hub starts dropping for that subscriber.
const sendBuffer = 16

// Hub fans events out to per-user subscribers. Publishing never blocks:
// a subscriber that stops draining its channel loses events rather than
// stalling the caller.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[chan Event]struct{})}
}

// Subscribe registers a listener for one user's events. The returned
// cancel func must be called when the listener goes away; it closes the
// channel.
func (h *Hub) Subscribe(userID int64) (<-chan Event, func()) {
	ch := make(chan Event, sendBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[userID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of the user. Implements
// the publish hook the services expect.
func (h *Hub) Publish(userID int64, eventType string, payload interface{}) {
	event := Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
	metrics.NotifyEventsPublishedTotal.Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[userID] {
		select {
		case ch <- event:
		default:
			log.Printf("[notify] dropping %s event for user %d, subscriber too slow", eventType, userID)
		}
	}
}

// Subscribers reports how many listeners a user currently has.
func (h *Hub) Subscribers(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
