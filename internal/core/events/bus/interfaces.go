package bus

import (
	"time"

	"github.com/touchsync/touchsync/internal/core/gesture"
)

// Event is one gesture lifecycle transition, carrying a read-only snapshot
// of the gesture that produced it.
type Event struct {
	// Type is the transition: "started", "updated", "completed", "cancelled".
	Type string `json:"type"`
	// Kind is the gesture kind, used as the topic.
	Kind      string           `json:"kind"`
	Timestamp time.Time        `json:"timestamp"`
	Frame     uint64           `json:"frame"`
	Gesture   gesture.Snapshot `json:"gesture"`
}

// Lifecycle event types.
const (
	TypeStarted   = "started"
	TypeUpdated   = "updated"
	TypeCompleted = "completed"
	TypeCancelled = "cancelled"
)

// Handler receives delivered events. Handlers run synchronously on the
// publishing goroutine, which for gesture events is the frame tick.
type Handler func(Event)

// Subscription is a cancelable registration of a handler.
type Subscription interface {
	ID() string
	Kind() string
	EventType() string
	IsActive() bool
	Cancel()
}

// Metrics counts bus activity.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	SubscribersActive uint64
}
