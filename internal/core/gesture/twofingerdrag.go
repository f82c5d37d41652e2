package gesture

import (
	"fmt"

	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/raycast"
	"github.com/touchsync/touchsync/internal/core/touch"
)

// TwoFingerDrag recognizes two fingers travelling the same way: both past
// the slop distance from where they started, with their motion vectors
// agreeing within an angular threshold. The co-directional check is what
// separates it from pinch and twist candidates competing for the same
// touches. Its aggregate position is the live midpoint of the two fingers.
type TwoFingerDrag struct {
	fingers [2]touch.FingerID
	starts  [2]geometry.Vec2

	slopInches float64
	maxAngle   float64
	caster     raycast.Raycaster

	position geometry.Vec2
	delta    geometry.Vec2
	target   *raycast.Node
}

var _ Logic = (*TwoFingerDrag)(nil)

// NewTwoFingerDrag builds a candidate from two distinct touches observed in
// the began or moved phase. caster may be nil when the host does no
// hit-testing.
func NewTwoFingerDrag(a, b touch.Sample, slopInches, maxAngleRad float64, caster raycast.Raycaster) *TwoFingerDrag {
	if a.Finger == b.Finger {
		panic(fmt.Sprintf("gesture: two-finger drag with duplicate finger %d", a.Finger))
	}
	return &TwoFingerDrag{
		fingers:    [2]touch.FingerID{a.Finger, b.Finger},
		starts:     [2]geometry.Vec2{a.Position, b.Position},
		slopInches: slopInches,
		maxAngle:   maxAngleRad,
		caster:     caster,
	}
}

func (d *TwoFingerDrag) Kind() Kind { return KindTwoFingerDrag }

func (d *TwoFingerDrag) Fingers() []touch.FingerID { return d.fingers[:] }

// CanStart fails closed: fingers that vanished or belong to another gesture
// abort the candidate, while insufficient or disagreeing motion just waits
// for the next frame.
func (d *TwoFingerDrag) CanStart(reg *touch.Registry) StartDecision {
	if reg.IsRetained(d.fingers[0]) || reg.IsRetained(d.fingers[1]) {
		return StartAbort
	}
	s1, ok := reg.TryFind(d.fingers[0])
	if !ok {
		return StartAbort
	}
	s2, ok := reg.TryFind(d.fingers[1])
	if !ok {
		return StartAbort
	}

	if s1.Delta.IsZero() && s2.Delta.IsZero() {
		return StartWait
	}

	travel1 := s1.Position.Sub(d.starts[0])
	travel2 := s2.Position.Sub(d.starts[1])
	if reg.PixelsToInches(travel1.Length()) < d.slopInches ||
		reg.PixelsToInches(travel2.Length()) < d.slopInches {
		return StartWait
	}

	if !geometry.Codirectional(travel1, travel2, d.maxAngle) {
		return StartWait
	}
	return StartNow
}

// OnStart seeds the aggregate position and resolves the optional target:
// one raycast from the first finger's screen position, falling back to the
// second only if that ray misses. First hit wins, no merging.
func (d *TwoFingerDrag) OnStart(reg *touch.Registry) {
	s1, _ := reg.TryFind(d.fingers[0])
	s2, _ := reg.TryFind(d.fingers[1])
	d.position = geometry.Midpoint(s1.Position, s2.Position)
	d.delta = geometry.Vec2{}

	if d.caster == nil {
		return
	}
	hit, ok := d.caster.FromCamera(s1.Position)
	if !ok {
		hit, ok = d.caster.FromCamera(s2.Position)
	}
	if ok {
		d.target, _ = raycast.InteractableAncestor(hit)
	}
}

func (d *TwoFingerDrag) Update(reg *touch.Registry) Outcome {
	samples, out := classify(reg, d.fingers[:])
	if out == OutcomeUpdated {
		mid := geometry.Midpoint(samples[0].Position, samples[1].Position)
		d.delta = mid.Sub(d.position)
		d.position = mid
	}
	return out
}

func (d *TwoFingerDrag) OnCancel() {}

// StartPositions returns where each finger was when the candidate formed.
func (d *TwoFingerDrag) StartPositions() []geometry.Vec2 { return d.starts[:] }

// Position is the current aggregate (midpoint) position.
func (d *TwoFingerDrag) Position() geometry.Vec2 { return d.position }

// Delta is the aggregate movement of the last updating frame.
func (d *TwoFingerDrag) Delta() geometry.Vec2 { return d.delta }

// Target is the interactable resolved at start, nil when every ray missed.
func (d *TwoFingerDrag) Target() *raycast.Node { return d.target }

func (d *TwoFingerDrag) Observe(s *Snapshot) {
	s.Starts = d.StartPositions()
	s.Position = d.position
	s.Delta = d.delta
	if d.target != nil {
		s.Target = d.target.ID
	}
}
