// Package notify fans out change notifications to live subscribers. It
// stands in for reactive queries: clients re-fetch when a collection
// they display has changed.
package notify

import (
	"sync"
	"time"
)

// Collection names carried in notifications.
const (
	Countries    = "countries"
	Indicators   = "indicators"
	PulseScores  = "pulse_scores"
	Events       = "events"
	EventImpacts = "event_impacts"
)

// Change describes one inserted row.
type Change struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Op         string    `json:"op"`
	At         time.Time `json:"at"`
}

// Publisher is implemented by Hub. Services depend on this interface.
type Publisher interface {
	Publish(Change)
}

// Hub delivers changes to every subscriber. A subscriber whose buffer is
// full misses the change instead of blocking the writer.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Change]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[chan Change]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned function must be
// called to release it; it closes the channel.
func (h *Hub) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Publish(c Change) {
	if c.Op == "" {
		c.Op = "insert"
	}
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Discard drops every change. It is used when live updates are disabled.
type Discard struct{}

func (Discard) Publish(Change) {}
