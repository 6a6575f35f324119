package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 16

// Hub fans reservation events out to in-process subscribers. Publish never
// blocks: a subscriber whose buffer is full misses the event, and there is
// no replay for subscribers that attach late.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan ReservationEvent
	nextID int
}

func NewHub() *Hub {
	return &Hub{
		subs: map[int]chan ReservationEvent{},
	}
}

// Subscribe registers a new subscriber and returns its channel together with
// an unsubscribe function. The channel is closed on unsubscribe.
func (h *Hub) Subscribe() (<-chan ReservationEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan ReservationEvent, subscriberBuffer)
	h.subs[id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

func (h *Hub) Publish(event ReservationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			log.Warn().
				Int("subscriber", id).
				Str("type", event.Type).
				Str("id", event.ID).
				Msg("Subscriber buffer full, dropping event")
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}
