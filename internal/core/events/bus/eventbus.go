package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Bus fans gesture lifecycle events out to subscribers. Subscriptions are
// keyed by gesture kind (empty means every kind) and event type (empty means
// every transition). Delivery is synchronous; the mutex only guards the
// subscription table, so listeners may subscribe and cancel from outside the
// frame loop (the inspector server does).
type Bus struct {
	mu sync.RWMutex
	// subs: kind -> eventType -> subID -> subscription
	subs    map[string]map[string]map[string]*subscription
	metrics Metrics
}

type subscription struct {
	id        string
	kind      string
	eventType string
	handler   Handler
	active    bool
	cancel    func()
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) Kind() string      { return s.kind }
func (s *subscription) EventType() string { return s.eventType }
func (s *subscription) IsActive() bool    { return s.active }
func (s *subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
	s.active = false
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[string]map[string]map[string]*subscription)}
}

// Subscribe registers a handler for every kind. eventType "" matches all
// transitions.
func (b *Bus) Subscribe(eventType string, h Handler) Subscription {
	return b.SubscribeKind("", eventType, h)
}

// SubscribeKind registers a handler for one gesture kind. kind "" matches
// all kinds, eventType "" all transitions.
func (b *Bus) SubscribeKind(kind, eventType string, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[kind] == nil {
		b.subs[kind] = make(map[string]map[string]*subscription)
	}
	if b.subs[kind][eventType] == nil {
		b.subs[kind][eventType] = make(map[string]*subscription)
	}
	id := uuid.NewString()
	s := &subscription{id: id, kind: kind, eventType: eventType, handler: h, active: true}
	s.cancel = func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if m := b.subs[kind][eventType]; m != nil {
			delete(m, id)
		}
	}
	b.subs[kind][eventType][id] = s
	return s
}

// Publish delivers an event to kind-specific and catch-all subscribers.
func (b *Bus) Publish(e Event) {
	kinds := []string{e.Kind}
	if e.Kind != "" {
		kinds = append(kinds, "")
	}
	types := []string{e.Type}
	if e.Type != "" {
		types = append(types, "")
	}

	b.mu.RLock()
	targets := make([]*subscription, 0, 4)
	for _, kind := range kinds {
		for _, eventType := range types {
			if m := b.subs[kind]; m != nil {
				for _, s := range m[eventType] {
					targets = append(targets, s)
				}
			}
		}
	}
	b.mu.RUnlock()

	for _, s := range targets {
		if s.active {
			s.handler(e)
		}
	}

	b.mu.Lock()
	b.metrics.Published++
	b.metrics.DeliveredHandlers += uint64(len(targets))
	b.mu.Unlock()
}

// GetMetrics returns a copy of the bus counters.
func (b *Bus) GetMetrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := b.metrics
	var active uint64
	for _, byType := range b.subs {
		for _, byID := range byType {
			active += uint64(len(byID))
		}
	}
	m.SubscribersActive = active
	return m
}
