package touch

import "fmt"

// DefaultDPI is used when the host supplies no display density.
const DefaultDPI = 96

// Registry is the process-wide touch table: the current frame's samples plus
// the set of fingers retained by active gestures. Access discipline is
// single-threaded per frame — BeginFrame repopulates the table once, then all
// gesture evaluation for that frame reads a stable snapshot.
type Registry struct {
	dpi      float64
	frame    uint64
	samples  map[FingerID]Sample
	order    []FingerID
	retained map[FingerID]struct{}
}

// NewRegistry creates an empty registry. dpi is the display density used for
// pixel-to-inch conversion; non-positive values fall back to DefaultDPI.
func NewRegistry(dpi float64) *Registry {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Registry{
		dpi:      dpi,
		samples:  make(map[FingerID]Sample),
		retained: make(map[FingerID]struct{}),
	}
}

// BeginFrame replaces the sample table with this frame's snapshot and bumps
// the frame counter. Retention state carries over: it belongs to gestures,
// not to frames.
func (r *Registry) BeginFrame(samples []Sample) {
	r.frame++
	r.samples = make(map[FingerID]Sample, len(samples))
	r.order = r.order[:0]
	for _, s := range samples {
		if _, dup := r.samples[s.Finger]; dup {
			continue
		}
		r.samples[s.Finger] = s
		r.order = append(r.order, s.Finger)
	}
}

// Frame returns the current frame number. Zero until the first BeginFrame.
func (r *Registry) Frame() uint64 { return r.frame }

// TryFind looks up the current-frame sample for a finger. The second return
// is false if the finger is not currently touching.
func (r *Registry) TryFind(id FingerID) (Sample, bool) {
	s, ok := r.samples[id]
	return s, ok
}

// IsRetained reports whether some active gesture owns this finger.
func (r *Registry) IsRetained(id FingerID) bool {
	_, ok := r.retained[id]
	return ok
}

// Lock marks a finger as retained by the calling gesture. Double-locking is
// an arbitration bug, not an input condition, so it panics rather than being
// swallowed.
func (r *Registry) Lock(id FingerID) {
	if _, ok := r.retained[id]; ok {
		panic(fmt.Sprintf("touch: finger %d locked twice", id))
	}
	r.retained[id] = struct{}{}
}

// Release removes retention for a finger. Releasing a finger that is not
// retained is a no-op, so a gesture may call it once per lock without
// tracking registry state.
func (r *Registry) Release(id FingerID) {
	delete(r.retained, id)
}

// Unretained returns this frame's samples for fingers no gesture owns, in
// input order.
func (r *Registry) Unretained() []Sample {
	out := make([]Sample, 0, len(r.order))
	for _, id := range r.order {
		if r.IsRetained(id) {
			continue
		}
		out = append(out, r.samples[id])
	}
	return out
}

// PixelsToInches converts a screen-space distance to physical units.
func (r *Registry) PixelsToInches(px float64) float64 {
	return px / r.dpi
}
