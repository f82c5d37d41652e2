package touch

import (
	mobiletouch "golang.org/x/mobile/event/touch"

	"github.com/touchsync/touchsync/internal/core/geometry"
)

// Adapter normalizes golang.org/x/mobile touch events into per-frame Samples,
// so the core never branches on the input-API flavor. Feed it events from the
// app event loop, then call Samples once per frame tick from the same
// goroutine.
//
// Phase derivation: Begin maps to began, Move to moved, End to ended, and a
// finger with no event since the last frame reports stationary. CancelAll
// covers lifecycle loss (the platform revoked the touch stream).
type Adapter struct {
	fingers map[FingerID]*adapterFinger
	order   []FingerID
}

type adapterFinger struct {
	position geometry.Vec2
	delta    geometry.Vec2
	phase    Phase
}

// NewAdapter creates an adapter with no tracked fingers.
func NewAdapter() *Adapter {
	return &Adapter{fingers: make(map[FingerID]*adapterFinger)}
}

var _ Source = (*Adapter)(nil)

// Handle folds one platform event into the pending frame.
func (a *Adapter) Handle(e mobiletouch.Event) {
	id := FingerID(e.Sequence)
	pos := geometry.Vec2{X: float64(e.X), Y: float64(e.Y)}

	switch e.Type {
	case mobiletouch.TypeBegin:
		a.fingers[id] = &adapterFinger{position: pos, phase: PhaseBegan}
		a.order = append(a.order, id)
	case mobiletouch.TypeMove:
		f, ok := a.fingers[id]
		if !ok {
			// Move without a begin: treat as a late begin.
			a.fingers[id] = &adapterFinger{position: pos, phase: PhaseBegan}
			a.order = append(a.order, id)
			return
		}
		f.delta = f.delta.Add(pos.Sub(f.position))
		f.position = pos
		if f.phase != PhaseBegan {
			f.phase = PhaseMoved
		}
	case mobiletouch.TypeEnd:
		if f, ok := a.fingers[id]; ok {
			f.position = pos
			f.phase = PhaseEnded
		}
	}
}

// CancelAll marks every tracked finger cancelled, for when the platform drops
// the touch stream (app backgrounded, surface lost).
func (a *Adapter) CancelAll() {
	for _, f := range a.fingers {
		f.phase = PhaseCancelled
	}
}

// Samples emits the frame snapshot and rolls adapter state forward: ended and
// cancelled fingers are dropped, surviving ones reset to stationary with a
// zero delta until their next event.
func (a *Adapter) Samples() []Sample {
	out := make([]Sample, 0, len(a.order))
	live := a.order[:0]
	for _, id := range a.order {
		f, ok := a.fingers[id]
		if !ok {
			continue
		}
		out = append(out, Sample{
			Finger:   id,
			Position: f.position,
			Delta:    f.delta,
			Phase:    f.phase,
		})
		switch f.phase {
		case PhaseEnded, PhaseCancelled:
			delete(a.fingers, id)
		default:
			f.delta = geometry.Vec2{}
			f.phase = PhaseStationary
			live = append(live, id)
		}
	}
	a.order = live
	return out
}
