package recognizer

import (
	"github.com/touchsync/touchsync/internal/core/events/bus"
	"github.com/touchsync/touchsync/internal/core/observability/log"
	"github.com/touchsync/touchsync/internal/core/raycast"
	"github.com/touchsync/touchsync/internal/core/touch"
)

// Engine composes the shared touch registry, the event bus and a set of
// recognizers into a single frame-driven entry point. All gesture evaluation
// happens synchronously inside Tick on the caller's goroutine; Tick always
// returns normally — expected recognition failures are silent state
// transitions, never errors.
type Engine struct {
	cfg         Config
	reg         *touch.Registry
	bus         *bus.Bus
	log         log.Log
	recognizers []*Recognizer
}

// NewEngine builds an engine with no recognizers attached.
func NewEngine(cfg Config, lg log.Log) *Engine {
	if lg == nil {
		lg = log.Nop()
	}
	return &Engine{
		cfg: cfg,
		reg: touch.NewRegistry(cfg.DPI),
		bus: bus.New(),
		log: lg,
	}
}

// Use attaches a recognizer. Recognizers run in attachment order each frame,
// which decides who wins a same-frame race to lock a finger.
func (e *Engine) Use(r *Recognizer) *Engine {
	e.recognizers = append(e.recognizers, r)
	return e
}

// UseDefaultSet attaches the built-in kinds. Tap goes last: it locks its
// finger the frame the touch lands, so giving the motion-gated kinds an
// earlier slot lets them claim fingers the moment their predicates pass.
func (e *Engine) UseDefaultSet(caster raycast.Raycaster) *Engine {
	e.Use(NewTwoFingerDrag(e.cfg, caster, e.bus, e.log))
	e.Use(NewPinch(e.cfg, caster, e.bus, e.log))
	e.Use(NewDrag(e.cfg, caster, e.bus, e.log))
	e.Use(NewTap(e.cfg, caster, e.bus, e.log))
	return e
}

// Tick runs one frame over the given touch snapshot. The snapshot is stable
// for the whole frame: the registry is repopulated once, then every
// recognizer advances against it.
func (e *Engine) Tick(samples []touch.Sample) {
	e.reg.BeginFrame(samples)
	for _, r := range e.recognizers {
		r.Tick(e.reg)
	}
}

// TickFrom pulls the frame snapshot from a touch source.
func (e *Engine) TickFrom(src touch.Source) {
	e.Tick(src.Samples())
}

// Bus exposes the lifecycle event bus for listeners.
func (e *Engine) Bus() *bus.Bus { return e.bus }

// Registry exposes the shared touch registry.
func (e *Engine) Registry() *touch.Registry { return e.reg }

// Config returns the thresholds the engine was built with.
func (e *Engine) Config() Config { return e.cfg }
