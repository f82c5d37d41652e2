package gesture

import (
	"github.com/google/uuid"

	"github.com/touchsync/touchsync/internal/core/touch"
)

// Gesture is one attempted or active gesture instance. It owns the lifecycle
// state machine and the lock/release bookkeeping; the embedded Logic supplies
// kind-specific behavior. Instances are created by a recognizer when it
// observes eligible touches and dropped once they reach a terminal state.
type Gesture struct {
	id     string
	logic  Logic
	state  State
	locked bool
}

// New wraps kind logic into a fresh candidate in Possible.
func New(logic Logic) *Gesture {
	return &Gesture{
		id:    uuid.NewString(),
		logic: logic,
		state: StatePossible,
	}
}

func (g *Gesture) ID() string { return g.id }

func (g *Gesture) Kind() Kind { return g.logic.Kind() }

func (g *Gesture) State() State { return g.state }

// Snapshot captures the observable state for listeners.
func (g *Gesture) Snapshot() Snapshot {
	s := Snapshot{
		ID:      g.id,
		Kind:    g.logic.Kind().String(),
		State:   g.state.String(),
		Fingers: g.logic.Fingers(),
	}
	g.logic.Observe(&s)
	return s
}

// Advance runs one frame of the lifecycle protocol and reports what
// happened. Driving a terminal gesture is a no-op; drivers are expected to
// sweep terminal instances before the next frame anyway.
func (g *Gesture) Advance(reg *touch.Registry) Outcome {
	switch g.state {
	case StateCompleted, StateCancelled:
		return OutcomeNone

	case StatePossible:
		switch g.logic.CanStart(reg) {
		case StartWait:
			return OutcomeNone
		case StartAbort:
			g.state = StateCancelled
			g.logic.OnCancel()
			return OutcomeCancelled
		default: // StartNow
			for _, id := range g.logic.Fingers() {
				reg.Lock(id)
			}
			g.locked = true
			g.state = StateStarted
			g.logic.OnStart(reg)
			return OutcomeStarted
		}

	default: // StateStarted, StateUpdating
		out := g.logic.Update(reg)
		switch out {
		case OutcomeCompleted:
			g.finish(reg, StateCompleted)
		case OutcomeCancelled:
			g.finish(reg, StateCancelled)
			g.logic.OnCancel()
		default:
			g.state = StateUpdating
		}
		return out
	}
}

// finish moves into a terminal state and releases every locked finger. The
// locked flag guarantees the release happens exactly once and only if the
// fingers were actually locked.
func (g *Gesture) finish(reg *touch.Registry, to State) {
	if g.locked {
		for _, id := range g.logic.Fingers() {
			reg.Release(id)
		}
		g.locked = false
	}
	g.state = to
}

// classify runs the shared phase triage over a gesture's fingers:
// missing sample or a cancelled phase cancels, an ended phase completes,
// any movement updates, otherwise nothing happened this frame.
// Samples come back in finger order and are only valid when the outcome is
// OutcomeUpdated or OutcomeNone.
func classify(reg *touch.Registry, fingers []touch.FingerID) ([]touch.Sample, Outcome) {
	samples := make([]touch.Sample, len(fingers))
	for i, id := range fingers {
		s, ok := reg.TryFind(id)
		if !ok {
			return nil, OutcomeCancelled
		}
		samples[i] = s
	}
	for _, s := range samples {
		if s.Phase == touch.PhaseCancelled {
			return nil, OutcomeCancelled
		}
	}
	for _, s := range samples {
		if s.Phase == touch.PhaseEnded {
			return nil, OutcomeCompleted
		}
	}
	for _, s := range samples {
		if s.Phase == touch.PhaseMoved {
			return samples, OutcomeUpdated
		}
	}
	return samples, OutcomeNone
}
