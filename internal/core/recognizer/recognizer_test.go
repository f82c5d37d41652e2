package recognizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/touchsync/touchsync/internal/core/events/bus"
	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/touch"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DPI = 100
	cfg.SlopInches = 0.2 // 20px
	cfg.PinchSlopInches = 0.2
	return cfg
}

type recording struct {
	events []bus.Event
}

func (r *recording) handler() bus.Handler {
	return func(e bus.Event) { r.events = append(r.events, e) }
}

func (r *recording) transitions() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind + ":" + e.Type
	}
	return out
}

func TestEngineRecognizesTwoFingerDrag(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, nil)
	e.Use(NewTwoFingerDrag(cfg, nil, e.Bus(), nil))

	rec := &recording{}
	e.Bus().Subscribe("", rec.handler())

	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 100, Y: 100}, Phase: touch.PhaseBegan},
		{Finger: 2, Position: geometry.Vec2{X: 200, Y: 100}, Phase: touch.PhaseBegan},
	})
	require.Empty(t, rec.events, "nothing moved yet")

	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 100, Y: 130}, Delta: geometry.Vec2{Y: 30}, Phase: touch.PhaseMoved},
		{Finger: 2, Position: geometry.Vec2{X: 200, Y: 130}, Delta: geometry.Vec2{Y: 30}, Phase: touch.PhaseMoved},
	})
	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 100, Y: 140}, Delta: geometry.Vec2{Y: 10}, Phase: touch.PhaseMoved},
		{Finger: 2, Position: geometry.Vec2{X: 200, Y: 140}, Delta: geometry.Vec2{Y: 10}, Phase: touch.PhaseMoved},
	})
	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 100, Y: 140}, Phase: touch.PhaseEnded},
		{Finger: 2, Position: geometry.Vec2{X: 200, Y: 140}, Phase: touch.PhaseStationary},
	})

	require.Equal(t, []string{
		"two_finger_drag:started",
		"two_finger_drag:updated",
		"two_finger_drag:completed",
	}, rec.transitions())

	started := rec.events[0]
	require.Equal(t, geometry.Vec2{X: 150, Y: 130}, started.Gesture.Position)
	require.False(t, e.Registry().IsRetained(1))
	require.False(t, e.Registry().IsRetained(2))
}

func TestWaitingCandidateKeepsItsStartPositions(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, nil)
	r := NewTwoFingerDrag(cfg, nil, e.Bus(), nil)
	e.Use(r)

	rec := &recording{}
	e.Bus().Subscribe(bus.TypeStarted, rec.handler())

	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 100, Y: 100}, Phase: touch.PhaseBegan},
		{Finger: 2, Position: geometry.Vec2{X: 200, Y: 100}, Phase: touch.PhaseBegan},
	})
	require.Equal(t, 1, r.Live())

	// Two 15px steps: each under slop alone, together past it. Recognition
	// only works if the frame-2 candidate survives into frame 3 with its
	// original start positions.
	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 100, Y: 115}, Delta: geometry.Vec2{Y: 15}, Phase: touch.PhaseMoved},
		{Finger: 2, Position: geometry.Vec2{X: 200, Y: 115}, Delta: geometry.Vec2{Y: 15}, Phase: touch.PhaseMoved},
	})
	require.Empty(t, rec.events)

	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 100, Y: 130}, Delta: geometry.Vec2{Y: 15}, Phase: touch.PhaseMoved},
		{Finger: 2, Position: geometry.Vec2{X: 200, Y: 130}, Delta: geometry.Vec2{Y: 15}, Phase: touch.PhaseMoved},
	})
	require.Len(t, rec.events, 1)
	require.Equal(t, []geometry.Vec2{{X: 100, Y: 100}, {X: 200, Y: 100}}, rec.events[0].Gesture.Starts)
}

func TestArbitrationPinchVersusTwoFingerDrag(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, nil)
	e.Use(NewTwoFingerDrag(cfg, nil, e.Bus(), nil))
	e.Use(NewPinch(cfg, nil, e.Bus(), nil))

	rec := &recording{}
	e.Bus().Subscribe(bus.TypeStarted, rec.handler())

	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 140, Y: 100}, Phase: touch.PhaseBegan},
		{Finger: 2, Position: geometry.Vec2{X: 160, Y: 100}, Phase: touch.PhaseBegan},
	})

	// Fingers spread apart: opposite directions, so the drag waits while the
	// pinch's separation predicate passes and locks both fingers.
	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 110, Y: 100}, Delta: geometry.Vec2{X: -30}, Phase: touch.PhaseMoved},
		{Finger: 2, Position: geometry.Vec2{X: 190, Y: 100}, Delta: geometry.Vec2{X: 30}, Phase: touch.PhaseMoved},
	})

	require.Equal(t, []string{"pinch:started"}, rec.transitions())
	require.True(t, e.Registry().IsRetained(1))
	require.True(t, e.Registry().IsRetained(2))

	// Next frame the drag candidate observes the retention and aborts.
	e.Tick([]touch.Sample{
		{Finger: 1, Position: geometry.Vec2{X: 110, Y: 100}, Phase: touch.PhaseStationary},
		{Finger: 2, Position: geometry.Vec2{X: 190, Y: 100}, Phase: touch.PhaseStationary},
	})
	require.Equal(t, []string{"pinch:started"}, rec.transitions(), "drag never started")
}

func TestTapYieldsToDragAfterCancelling(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, nil).UseDefaultSet(nil)

	rec := &recording{}
	e.Bus().Subscribe(bus.TypeStarted, rec.handler())
	cancels := &recording{}
	e.Bus().SubscribeKind("tap", bus.TypeCancelled, cancels.handler())

	// Tap claims the finger the frame it lands.
	e.Tick([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 50, Y: 50}, Phase: touch.PhaseBegan}})
	require.Equal(t, []string{"tap:started"}, rec.transitions())

	// The press turns into a 30px move: the tap cancels and releases.
	e.Tick([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 80, Y: 50}, Delta: geometry.Vec2{X: 30}, Phase: touch.PhaseMoved}})
	require.Len(t, cancels.events, 1)
	require.False(t, e.Registry().IsRetained(1))

	// Freed finger keeps moving: the drag recognizer picks it up once its
	// own slop passes, measured from where its candidate formed.
	e.Tick([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 110, Y: 50}, Delta: geometry.Vec2{X: 30}, Phase: touch.PhaseMoved}})
	e.Tick([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 140, Y: 50}, Delta: geometry.Vec2{X: 30}, Phase: touch.PhaseMoved}})

	require.Equal(t, []string{"tap:started", "drag:started"}, rec.transitions())
	require.True(t, e.Registry().IsRetained(1))
}

func TestTerminalGesturesAreSwept(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, nil)
	r := NewDrag(cfg, nil, e.Bus(), nil)
	e.Use(r)

	e.Tick([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 0, Y: 0}, Phase: touch.PhaseBegan}})
	require.Equal(t, 1, r.Live())

	// Finger vanishes without an end phase: candidate aborts and is removed.
	e.Tick(nil)
	require.Equal(t, 0, r.Live())
}
