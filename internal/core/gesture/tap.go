package gesture

import (
	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/raycast"
	"github.com/touchsync/touchsync/internal/core/touch"
)

// Tap recognizes a short, still press: one finger that lifts within a frame
// budget without travelling past the slop distance. It claims the finger on
// the frame the touch begins, so composing it next to drag recognizers is a
// policy decision for the host; when the press turns into a drag the tap
// cancels and releases the finger for other recognizers to pick up.
type Tap struct {
	finger touch.FingerID
	start  geometry.Vec2

	slopInches float64
	maxFrames  uint64
	caster     raycast.Raycaster

	startFrame uint64
	position   geometry.Vec2
	delta      geometry.Vec2
	target     *raycast.Node
}

var _ Logic = (*Tap)(nil)

// NewTap builds a candidate from a touch in the began phase.
func NewTap(s touch.Sample, slopInches float64, maxFrames uint64, caster raycast.Raycaster) *Tap {
	return &Tap{
		finger:     s.Finger,
		start:      s.Position,
		slopInches: slopInches,
		maxFrames:  maxFrames,
		caster:     caster,
	}
}

func (t *Tap) Kind() Kind { return KindTap }

func (t *Tap) Fingers() []touch.FingerID { return []touch.FingerID{t.finger} }

func (t *Tap) CanStart(reg *touch.Registry) StartDecision {
	if reg.IsRetained(t.finger) {
		return StartAbort
	}
	if _, ok := reg.TryFind(t.finger); !ok {
		return StartAbort
	}
	return StartNow
}

func (t *Tap) OnStart(reg *touch.Registry) {
	s, _ := reg.TryFind(t.finger)
	t.startFrame = reg.Frame()
	t.position = s.Position
	if t.caster != nil {
		if hit, ok := t.caster.FromCamera(s.Position); ok {
			t.target, _ = raycast.InteractableAncestor(hit)
		}
	}
}

func (t *Tap) Update(reg *touch.Registry) Outcome {
	samples, out := classify(reg, t.Fingers())
	switch out {
	case OutcomeCompleted:
		// Lifted: a tap only if it stayed inside the budget.
		if t.maxFrames > 0 && reg.Frame()-t.startFrame > t.maxFrames {
			return OutcomeCancelled
		}
		return OutcomeCompleted
	case OutcomeUpdated:
		s := samples[0]
		travel := geometry.Distance(s.Position, t.start)
		if reg.PixelsToInches(travel) > t.slopInches {
			return OutcomeCancelled
		}
		t.delta = s.Position.Sub(t.position)
		t.position = s.Position
		return OutcomeUpdated
	case OutcomeNone:
		if t.maxFrames > 0 && reg.Frame()-t.startFrame > t.maxFrames {
			return OutcomeCancelled
		}
		return OutcomeNone
	default:
		return out
	}
}

func (t *Tap) OnCancel() {}

func (t *Tap) Position() geometry.Vec2 { return t.position }

func (t *Tap) Target() *raycast.Node { return t.target }

func (t *Tap) Observe(s *Snapshot) {
	s.Starts = []geometry.Vec2{t.start}
	s.Position = t.position
	s.Delta = t.delta
	if t.target != nil {
		s.Target = t.target.ID
	}
}
