// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"sync"
	"time"
)

// Action constants for change events
const (
	ActionInsert = "insert"
	ActionDelete = "delete"
	ActionReset  = "reset"
)

// Event is one change notification, addressed by table name
type Event struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	ID     string    `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

// subscriberBuffer bounds how far behind a subscriber may fall.
// Publish never blocks; events past the buffer are dropped.
const subscriberBuffer = 16

// Subscriber receives events for the tables it asked for
type Subscriber struct {
	tables map[string]bool // empty means all tables
	ch     chan Event
}

// Events returns the subscriber's receive channel
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Hub fans change events out to SSE subscribers
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a listener for the given tables.
// An empty table list subscribes to everything.
func (h *Hub) Subscribe(tables []string) *Subscriber {
	sub := &Subscriber{
		tables: make(map[string]bool, len(tables)),
		ch:     make(chan Event, subscriberBuffer),
	}
	for _, t := range tables {
		if t != "" {
			sub.tables[t] = true
		}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes the listener and closes its channel
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	if ok {
		delete(h.subs, sub)
	}
	h.mu.Unlock()

	if ok {
		close(sub.ch)
	}
}

// Publish delivers an event to every matching subscriber.
// Sends are non-blocking: a full subscriber misses the event rather
// than stalling the mutating request that published it.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if len(sub.tables) > 0 && !sub.tables[e.Table] {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			// Subscriber is not keeping up; drop
		}
	}
}

// SubscriberCount reports the number of active subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
