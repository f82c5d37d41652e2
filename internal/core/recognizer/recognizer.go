package recognizer

import (
	"time"

	"github.com/touchsync/touchsync/internal/core/events/bus"
	"github.com/touchsync/touchsync/internal/core/gesture"
	"github.com/touchsync/touchsync/internal/core/observability/log"
	"github.com/touchsync/touchsync/internal/core/raycast"
	"github.com/touchsync/touchsync/internal/core/touch"
)

// scanner proposes fresh candidates for one gesture kind from this frame's
// unretained touches.
type scanner interface {
	Kind() gesture.Kind
	Scan(reg *touch.Registry) []gesture.Logic
}

// fingerKey identifies the finger combination a candidate covers, so a
// waiting candidate is not recreated (and its start positions reset) every
// frame. Single-finger kinds leave b at -1.
type fingerKey struct {
	a, b touch.FingerID
}

func makeKey(fingers []touch.FingerID) fingerKey {
	switch len(fingers) {
	case 1:
		return fingerKey{fingers[0], -1}
	case 2:
		a, b := fingers[0], fingers[1]
		if b < a {
			a, b = b, a
		}
		return fingerKey{a, b}
	default:
		panic("recognizer: unsupported finger count")
	}
}

type liveEntry struct {
	key fingerKey
	g   *gesture.Gesture
}

// Recognizer drives every live-or-candidate gesture of one kind through the
// per-frame lifecycle protocol. Multiple recognizers run independently over
// the same registry each frame; mutual exclusion between them is purely
// finger retention — whoever locks a finger first owns it for the gesture's
// duration.
type Recognizer struct {
	scanner scanner
	bus     *bus.Bus
	log     log.Log

	live []liveEntry
	keys map[fingerKey]struct{}
}

func newRecognizer(s scanner, b *bus.Bus, lg log.Log) *Recognizer {
	if lg == nil {
		lg = log.Nop()
	}
	return &Recognizer{
		scanner: s,
		bus:     b,
		log:     lg.With(log.String("recognizer", s.Kind().String())),
		keys:    make(map[fingerKey]struct{}),
	}
}

// Kind returns the gesture kind this recognizer produces.
func (r *Recognizer) Kind() gesture.Kind { return r.scanner.Kind() }

// Live returns the number of live-or-candidate gestures.
func (r *Recognizer) Live() int { return len(r.live) }

// Tick runs one frame: admit new candidates, advance everything, publish
// transitions, and sweep terminal gestures so the next frame never drives
// them again.
func (r *Recognizer) Tick(reg *touch.Registry) {
	for _, logic := range r.scanner.Scan(reg) {
		key := makeKey(logic.Fingers())
		if _, covered := r.keys[key]; covered {
			continue
		}
		r.keys[key] = struct{}{}
		r.live = append(r.live, liveEntry{key: key, g: gesture.New(logic)})
	}

	for _, e := range r.live {
		r.report(reg, e.g, e.g.Advance(reg))
	}

	kept := r.live[:0]
	for _, e := range r.live {
		if e.g.State().Terminal() {
			delete(r.keys, e.key)
			continue
		}
		kept = append(kept, e)
	}
	r.live = kept
}

func (r *Recognizer) report(reg *touch.Registry, g *gesture.Gesture, out gesture.Outcome) {
	var eventType string
	switch out {
	case gesture.OutcomeStarted:
		eventType = bus.TypeStarted
		r.log.Debug("gesture started", log.String("gesture", g.ID()), log.Uint64("frame", reg.Frame()))
	case gesture.OutcomeUpdated:
		eventType = bus.TypeUpdated
	case gesture.OutcomeCompleted:
		eventType = bus.TypeCompleted
		r.log.Debug("gesture completed", log.String("gesture", g.ID()), log.Uint64("frame", reg.Frame()))
	case gesture.OutcomeCancelled:
		eventType = bus.TypeCancelled
	default:
		return
	}
	if r.bus == nil {
		return
	}
	r.bus.Publish(bus.Event{
		Type:      eventType,
		Kind:      g.Kind().String(),
		Timestamp: time.Now(),
		Frame:     reg.Frame(),
		Gesture:   g.Snapshot(),
	})
}

// eligible reports whether a touch may seed a new candidate.
func eligible(s touch.Sample) bool {
	return s.Phase == touch.PhaseBegan || s.Phase == touch.PhaseMoved
}

type twoFingerDragScanner struct {
	cfg    Config
	caster raycast.Raycaster
}

func (s twoFingerDragScanner) Kind() gesture.Kind { return gesture.KindTwoFingerDrag }

func (s twoFingerDragScanner) Scan(reg *touch.Registry) []gesture.Logic {
	var out []gesture.Logic
	samples := unretainedEligible(reg)
	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			out = append(out, gesture.NewTwoFingerDrag(
				samples[i], samples[j],
				s.cfg.SlopInches, s.cfg.AngleThresholdRadians, s.caster,
			))
		}
	}
	return out
}

type pinchScanner struct {
	cfg    Config
	caster raycast.Raycaster
}

func (s pinchScanner) Kind() gesture.Kind { return gesture.KindPinch }

func (s pinchScanner) Scan(reg *touch.Registry) []gesture.Logic {
	var out []gesture.Logic
	samples := unretainedEligible(reg)
	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			out = append(out, gesture.NewPinch(samples[i], samples[j], s.cfg.PinchSlopInches, s.caster))
		}
	}
	return out
}

type dragScanner struct {
	cfg    Config
	caster raycast.Raycaster
}

func (s dragScanner) Kind() gesture.Kind { return gesture.KindDrag }

func (s dragScanner) Scan(reg *touch.Registry) []gesture.Logic {
	var out []gesture.Logic
	for _, sample := range unretainedEligible(reg) {
		out = append(out, gesture.NewDrag(sample, s.cfg.SlopInches, s.caster))
	}
	return out
}

type tapScanner struct {
	cfg    Config
	caster raycast.Raycaster
}

func (s tapScanner) Kind() gesture.Kind { return gesture.KindTap }

func (s tapScanner) Scan(reg *touch.Registry) []gesture.Logic {
	var out []gesture.Logic
	for _, sample := range reg.Unretained() {
		// Taps only seed on the frame the touch begins.
		if sample.Phase != touch.PhaseBegan {
			continue
		}
		out = append(out, gesture.NewTap(sample, s.cfg.SlopInches, s.cfg.TapMaxFrames, s.caster))
	}
	return out
}

func unretainedEligible(reg *touch.Registry) []touch.Sample {
	all := reg.Unretained()
	out := all[:0]
	for _, s := range all {
		if eligible(s) {
			out = append(out, s)
		}
	}
	return out
}

// NewTwoFingerDrag creates the recognizer for two fingers dragging
// co-directionally.
func NewTwoFingerDrag(cfg Config, caster raycast.Raycaster, b *bus.Bus, lg log.Log) *Recognizer {
	return newRecognizer(twoFingerDragScanner{cfg: cfg, caster: caster}, b, lg)
}

// NewPinch creates the recognizer for two fingers changing separation.
func NewPinch(cfg Config, caster raycast.Raycaster, b *bus.Bus, lg log.Log) *Recognizer {
	return newRecognizer(pinchScanner{cfg: cfg, caster: caster}, b, lg)
}

// NewDrag creates the single-finger drag recognizer.
func NewDrag(cfg Config, caster raycast.Raycaster, b *bus.Bus, lg log.Log) *Recognizer {
	return newRecognizer(dragScanner{cfg: cfg, caster: caster}, b, lg)
}

// NewTap creates the tap recognizer. Taps lock their finger the frame it
// lands, so list this recognizer after the ones that should win arbitration
// on later frames.
func NewTap(cfg Config, caster raycast.Raycaster, b *bus.Bus, lg log.Log) *Recognizer {
	return newRecognizer(tapScanner{cfg: cfg, caster: caster}, b, lg)
}
