package sse

import (
	"sync"
)

// Event is a server-sent event addressed to one staff member.
type Event struct {
	StaffID int64
	Event   string
	Data    interface{}
}

// Hub fans events out to the open SSE streams of each staff member.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for a staff member and returns the event
// channel plus a cleanup function the caller must invoke on disconnect.
func (h *Hub) Subscribe(staffID int64) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[staffID] == nil {
		h.subscribers[staffID] = make(map[chan Event]struct{})
	}
	h.subscribers[staffID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[staffID], ch)
		close(ch)
		if len(h.subscribers[staffID]) == 0 {
			delete(h.subscribers, staffID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every open stream of one staff member.
func (h *Hub) Publish(staffID int64, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[staffID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of open streams for a staff member.
func (h *Hub) SubscriberCount(staffID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[staffID]; ok {
		return len(subs)
	}
	return 0
}
