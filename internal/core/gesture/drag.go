package gesture

import (
	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/raycast"
	"github.com/touchsync/touchsync/internal/core/touch"
)

// Drag recognizes a single finger travelling past the slop distance. Its
// aggregate position is the finger position itself.
type Drag struct {
	finger touch.FingerID
	start  geometry.Vec2

	slopInches float64
	caster     raycast.Raycaster

	position geometry.Vec2
	delta    geometry.Vec2
	target   *raycast.Node
}

var _ Logic = (*Drag)(nil)

// NewDrag builds a candidate from a touch in the began or moved phase.
func NewDrag(s touch.Sample, slopInches float64, caster raycast.Raycaster) *Drag {
	return &Drag{
		finger:     s.Finger,
		start:      s.Position,
		slopInches: slopInches,
		caster:     caster,
	}
}

func (d *Drag) Kind() Kind { return KindDrag }

func (d *Drag) Fingers() []touch.FingerID { return []touch.FingerID{d.finger} }

func (d *Drag) CanStart(reg *touch.Registry) StartDecision {
	if reg.IsRetained(d.finger) {
		return StartAbort
	}
	s, ok := reg.TryFind(d.finger)
	if !ok {
		return StartAbort
	}
	if s.Delta.IsZero() {
		return StartWait
	}
	travel := geometry.Distance(s.Position, d.start)
	if reg.PixelsToInches(travel) < d.slopInches {
		return StartWait
	}
	return StartNow
}

func (d *Drag) OnStart(reg *touch.Registry) {
	s, _ := reg.TryFind(d.finger)
	d.position = s.Position
	d.delta = geometry.Vec2{}
	if d.caster != nil {
		if hit, ok := d.caster.FromCamera(s.Position); ok {
			d.target, _ = raycast.InteractableAncestor(hit)
		}
	}
}

func (d *Drag) Update(reg *touch.Registry) Outcome {
	samples, out := classify(reg, d.Fingers())
	if out == OutcomeUpdated {
		d.delta = samples[0].Position.Sub(d.position)
		d.position = samples[0].Position
	}
	return out
}

func (d *Drag) OnCancel() {}

func (d *Drag) Position() geometry.Vec2 { return d.position }

func (d *Drag) Delta() geometry.Vec2 { return d.delta }

func (d *Drag) Target() *raycast.Node { return d.target }

func (d *Drag) Observe(s *Snapshot) {
	s.Starts = []geometry.Vec2{d.start}
	s.Position = d.position
	s.Delta = d.delta
	if d.target != nil {
		s.Target = d.target.ID
	}
}
