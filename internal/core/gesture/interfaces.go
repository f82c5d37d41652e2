package gesture

import (
	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/touch"
)

// Kind tags a gesture variant. The driver dispatches over the Logic
// interface, the tag exists for listeners, logs and event topics.
type Kind uint8

const (
	KindTap Kind = iota
	KindDrag
	KindPinch
	KindTwoFingerDrag
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindDrag:
		return "drag"
	case KindPinch:
		return "pinch"
	case KindTwoFingerDrag:
		return "two_finger_drag"
	default:
		return "unknown"
	}
}

// State is the lifecycle position of one gesture instance.
// Possible → Started → Updating → Completed | Cancelled.
// No transition leaves a terminal state.
type State uint8

const (
	StatePossible State = iota
	StateStarted
	StateUpdating
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePossible:
		return "possible"
	case StateStarted:
		return "started"
	case StateUpdating:
		return "updating"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can occur.
func (s State) Terminal() bool { return s == StateCompleted || s == StateCancelled }

// StartDecision is the tri-state answer of CanStart.
type StartDecision uint8

const (
	// StartWait keeps the candidate in Possible for another frame.
	StartWait StartDecision = iota
	// StartNow begins the gesture: the driver locks its fingers and runs OnStart.
	StartNow
	// StartAbort discards the candidate. Its fingers were never locked, so
	// no release is owed.
	StartAbort
)

// Outcome is what one frame of driving did to a gesture, used by the driver
// to decide which listeners fire.
type Outcome uint8

const (
	// OutcomeNone means no observable change this frame.
	OutcomeNone Outcome = iota
	OutcomeStarted
	OutcomeUpdated
	OutcomeCompleted
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeStarted:
		return "started"
	case OutcomeUpdated:
		return "updated"
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Logic is the capability surface one gesture kind implements. A Gesture
// owns the state machine; Logic supplies the kind-specific predicates and
// bookkeeping. All methods run single-threaded within a frame tick.
type Logic interface {
	Kind() Kind

	// Fingers returns the finger ids this gesture tracks, immutable once
	// constructed.
	Fingers() []touch.FingerID

	// CanStart evaluates the validity predicate while in Possible.
	CanStart(reg *touch.Registry) StartDecision

	// OnStart initializes aggregate state after the driver locked the
	// fingers, including the one-shot raycast target resolution.
	OnStart(reg *touch.Registry)

	// Update advances an active gesture one frame. It may return
	// OutcomeNone, OutcomeUpdated, OutcomeCompleted or OutcomeCancelled.
	Update(reg *touch.Registry) Outcome

	// OnCancel runs on any transition into Cancelled.
	OnCancel()

	// Observe fills the kind-specific part of a snapshot.
	Observe(s *Snapshot)
}

// Snapshot is the read-only observable state of a gesture instance, safe to
// hand to listeners and to serialize for inspection tooling.
type Snapshot struct {
	ID       string           `json:"id"`
	Kind     string           `json:"kind"`
	State    string           `json:"state"`
	Fingers  []touch.FingerID `json:"fingers"`
	Starts   []geometry.Vec2  `json:"starts,omitempty"`
	Position geometry.Vec2    `json:"position"`
	Delta    geometry.Vec2    `json:"delta"`
	Target   string           `json:"target,omitempty"`
	Scale    float64          `json:"scale,omitempty"`
}
