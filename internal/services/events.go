package services

import (
	"sync"
)

// Event is a real-time update pushed to connected clients over SSE.
// Type is one of "chat", "activity", "announcement", "insight".
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventHub fans events out to connected SSE clients. Slow clients never
// block a publish; their events are dropped once the buffer fills.
type EventHub struct {
	clients map[string]chan Event
	mu      sync.RWMutex
}

func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]chan Event),
	}
}

// Subscribe registers a client and returns its event channel.
func (h *EventHub) Subscribe(clientID string) <-chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 100)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe closes and removes a client's channel.
func (h *EventHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish sends an event to every connected client without blocking.
func (h *EventHub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		select {
		case ch <- event:
		default:
			// buffer full, client is too slow
		}
	}
}

// ClientCount reports how many clients are connected.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var (
	globalEventHub *EventHub
	eventHubOnce   sync.Once
)

// GetEventHub returns the process-wide hub.
func GetEventHub() *EventHub {
	eventHubOnce.Do(func() {
		globalEventHub = NewEventHub()
	})
	return globalEventHub
}
