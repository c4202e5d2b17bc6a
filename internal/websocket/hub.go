package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when sending to a closed or saturated client
var ErrClientClosed = errors.New("client is closed")

// Subscriber receives serialized events from the hub
type Subscriber interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Hub fans every event out to all connected subscribers. There are no rooms:
// the service has a single shared data set.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]Subscriber
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{subs: make(map[string]Subscriber)}
}

// Register adds a subscriber
func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	h.subs[s.ID()] = s
	n := len(h.subs)
	h.mu.Unlock()

	log.Debug().Str("client_id", s.ID()).Int("client_count", n).Msg("WebSocket client registered")
}

// Unregister removes a subscriber. Unknown subscribers are ignored.
func (h *Hub) Unregister(s Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[s.ID()]
	delete(h.subs, s.ID())
	h.mu.Unlock()

	if ok {
		log.Debug().Str("client_id", s.ID()).Msg("WebSocket client unregistered")
	}
}

// Broadcast serializes event once and queues it for every subscriber.
// Subscribers that cannot take it are dropped.
func (h *Hub) Broadcast(event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("event_type", event.Type).Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.Send(data); err != nil {
			log.Warn().Err(err).Str("client_id", s.ID()).Msg("Dropping WebSocket client")
			h.Unregister(s)
		}
	}

	if len(targets) > 0 {
		log.Debug().Str("event_type", event.Type).Int("client_count", len(targets)).Msg("Broadcast event")
	}
}

// ClientCount returns the number of connected subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// CloseAll disconnects and forgets every subscriber
func (h *Hub) CloseAll() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[string]Subscriber)
	h.mu.Unlock()

	for _, s := range subs {
		s.Close()
	}
}
