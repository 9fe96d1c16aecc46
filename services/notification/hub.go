package notification

import (
	"sync"

	"mechradii/models"
	"mechradii/utils"

	"go.uber.org/zap"
)

// Sink receives notices for one subscriber. The websocket handler wraps a
// connection in this; tests can plug in anything.
type Sink interface {
	Send(notice models.Notice) error
	Close() error
}

// Hub fans booking notices out to live subscribers keyed by user id. A user
// may hold several subscriptions (multiple tabs or devices); each one gets
// every notice addressed to that user.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[Sink]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[Sink]struct{})}
}

// Subscribe registers a sink for the user's notices. Events that occurred
// before subscription are never replayed.
func (h *Hub) Subscribe(userID string, sink Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[Sink]struct{})
	}
	h.subs[userID][sink] = struct{}{}
}

// Unsubscribe removes the sink and closes it. Safe to call twice.
func (h *Hub) Unsubscribe(userID string, sink Sink) {
	h.mu.Lock()
	set, ok := h.subs[userID]
	if ok {
		delete(set, sink)
		if len(set) == 0 {
			delete(h.subs, userID)
		}
	}
	h.mu.Unlock()
	if ok {
		_ = sink.Close()
	}
}

// Publish delivers the notice to every live subscription for the user. A
// failing sink is dropped so a dead connection cannot wedge the relay.
func (h *Hub) Publish(userID string, notice models.Notice) {
	h.mu.RLock()
	sinks := make([]Sink, 0, len(h.subs[userID]))
	for sink := range h.subs[userID] {
		sinks = append(sinks, sink)
	}
	h.mu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Send(notice); err != nil {
			utils.GetLogger().Warn("dropping dead notification subscriber",
				zap.String("user_id", userID), zap.Error(err))
			h.Unsubscribe(userID, sink)
		}
	}
}

// Close shuts down every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[string]map[Sink]struct{})
	h.mu.Unlock()
	for _, set := range subs {
		for sink := range set {
			_ = sink.Close()
		}
	}
}
