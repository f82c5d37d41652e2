package touch

import (
	"github.com/touchsync/touchsync/internal/core/geometry"
)

// FingerID is a stable integer tag for one continuous touch contact.
// It does not change for the lifetime of the contact and may be reused
// by the platform after the contact ends.
type FingerID int64

// Phase describes what a finger did between the previous frame and this one.
type Phase uint8

const (
	PhaseBegan Phase = iota
	PhaseMoved
	PhaseStationary
	PhaseEnded
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseMoved:
		return "moved"
	case PhaseStationary:
		return "stationary"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Sample is the snapshot of one finger for the current frame. It is a value
// type: the input source replaces it wholesale every frame and nothing in the
// core mutates it.
type Sample struct {
	Finger   FingerID
	Position geometry.Vec2
	Delta    geometry.Vec2
	Phase    Phase
}

// Source delivers the per-frame touch snapshot. The slice must be stable for
// the duration of one frame's gesture evaluation.
type Source interface {
	Samples() []Sample
}
