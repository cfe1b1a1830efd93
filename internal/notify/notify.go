// Package notify is the in-process publish/subscribe hub the API layer
// feeds after successful writes. Subscribers are keyed by factory name.
// No transport is attached today; a push channel (websocket, SSE) can
// subscribe here without touching the handlers.
package notify

import "sync"

// Event describes a change to a factory's data
type Event struct {
	Topic     string `json:"topic"`
	FactoryID string `json:"factoryId"`
}

// Hub fans events out to per-factory subscribers. Publish never blocks:
// a subscriber that cannot keep up drops events rather than stalling the
// write path.
type Hub struct {
	mu   sync.RWMutex
	subs map[string][]chan Event
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[string][]chan Event)}
}

// Subscribe registers interest in one factory's events. The returned
// cancel func must be called to release the subscription.
func (h *Hub) Subscribe(factoryID string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[factoryID] = append(h.subs[factoryID], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		channels := h.subs[factoryID]
		for i, c := range channels {
			if c == ch {
				h.subs[factoryID] = append(channels[:i], channels[i+1:]...)
				break
			}
		}
		if len(h.subs[factoryID]) == 0 {
			delete(h.subs, factoryID)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of its factory
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[ev.FactoryID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
