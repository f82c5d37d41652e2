package gesture

import (
	"fmt"
	"math"

	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/raycast"
	"github.com/touchsync/touchsync/internal/core/touch"
)

// Pinch recognizes two fingers changing their separation: spreading or
// squeezing past the slop distance. Unlike TwoFingerDrag there is no
// co-directional requirement, which is exactly how the two kinds stay
// disjoint while competing for the same touches. Scale is the current
// separation over the separation at start.
type Pinch struct {
	fingers [2]touch.FingerID
	starts  [2]geometry.Vec2

	slopInches float64
	caster     raycast.Raycaster

	position   geometry.Vec2
	delta      geometry.Vec2
	separation float64
	baseline   float64
	target     *raycast.Node
}

var _ Logic = (*Pinch)(nil)

// NewPinch builds a candidate from two distinct touches.
func NewPinch(a, b touch.Sample, slopInches float64, caster raycast.Raycaster) *Pinch {
	if a.Finger == b.Finger {
		panic(fmt.Sprintf("gesture: pinch with duplicate finger %d", a.Finger))
	}
	return &Pinch{
		fingers:    [2]touch.FingerID{a.Finger, b.Finger},
		starts:     [2]geometry.Vec2{a.Position, b.Position},
		slopInches: slopInches,
		caster:     caster,
	}
}

func (p *Pinch) Kind() Kind { return KindPinch }

func (p *Pinch) Fingers() []touch.FingerID { return p.fingers[:] }

func (p *Pinch) CanStart(reg *touch.Registry) StartDecision {
	if reg.IsRetained(p.fingers[0]) || reg.IsRetained(p.fingers[1]) {
		return StartAbort
	}
	s1, ok := reg.TryFind(p.fingers[0])
	if !ok {
		return StartAbort
	}
	s2, ok := reg.TryFind(p.fingers[1])
	if !ok {
		return StartAbort
	}

	if s1.Delta.IsZero() && s2.Delta.IsZero() {
		return StartWait
	}

	spread := geometry.Distance(s1.Position, s2.Position) - geometry.Distance(p.starts[0], p.starts[1])
	if reg.PixelsToInches(math.Abs(spread)) < p.slopInches {
		return StartWait
	}
	return StartNow
}

func (p *Pinch) OnStart(reg *touch.Registry) {
	s1, _ := reg.TryFind(p.fingers[0])
	s2, _ := reg.TryFind(p.fingers[1])
	p.position = geometry.Midpoint(s1.Position, s2.Position)
	p.delta = geometry.Vec2{}
	p.separation = geometry.Distance(s1.Position, s2.Position)
	p.baseline = geometry.Distance(p.starts[0], p.starts[1])
	if p.baseline == 0 {
		p.baseline = p.separation
	}

	if p.caster == nil {
		return
	}
	hit, ok := p.caster.FromCamera(s1.Position)
	if !ok {
		hit, ok = p.caster.FromCamera(s2.Position)
	}
	if ok {
		p.target, _ = raycast.InteractableAncestor(hit)
	}
}

func (p *Pinch) Update(reg *touch.Registry) Outcome {
	samples, out := classify(reg, p.fingers[:])
	if out == OutcomeUpdated {
		mid := geometry.Midpoint(samples[0].Position, samples[1].Position)
		p.delta = mid.Sub(p.position)
		p.position = mid
		p.separation = geometry.Distance(samples[0].Position, samples[1].Position)
	}
	return out
}

func (p *Pinch) OnCancel() {}

func (p *Pinch) Position() geometry.Vec2 { return p.position }

// Scale is current separation over the separation at start; 1 means
// unchanged, >1 spreading, <1 squeezing.
func (p *Pinch) Scale() float64 {
	if p.baseline == 0 {
		return 1
	}
	return p.separation / p.baseline
}

func (p *Pinch) Target() *raycast.Node { return p.target }

func (p *Pinch) Observe(s *Snapshot) {
	s.Starts = p.starts[:]
	s.Position = p.position
	s.Delta = p.delta
	s.Scale = p.Scale()
	if p.target != nil {
		s.Target = p.target.ID
	}
}
