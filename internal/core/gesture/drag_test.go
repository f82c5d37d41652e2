package gesture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/touch"
)

func TestDragLifecycle(t *testing.T) {
	reg := newTestRegistry()
	s := touch.Sample{Finger: 3, Position: geometry.Vec2{X: 10, Y: 10}, Phase: touch.PhaseBegan}
	reg.BeginFrame([]touch.Sample{s})
	logic := NewDrag(s, testSlop, nil)
	g := New(logic)

	// Still: waits.
	require.Equal(t, OutcomeNone, g.Advance(reg))

	// Under slop: keeps waiting.
	reg.BeginFrame([]touch.Sample{{Finger: 3, Position: geometry.Vec2{X: 20, Y: 10}, Delta: geometry.Vec2{X: 10}, Phase: touch.PhaseMoved}})
	require.Equal(t, OutcomeNone, g.Advance(reg))
	require.Equal(t, StatePossible, g.State())

	// Past slop: starts at the finger position.
	reg.BeginFrame([]touch.Sample{{Finger: 3, Position: geometry.Vec2{X: 35, Y: 10}, Delta: geometry.Vec2{X: 15}, Phase: touch.PhaseMoved}})
	require.Equal(t, OutcomeStarted, g.Advance(reg))
	require.Equal(t, geometry.Vec2{X: 35, Y: 10}, logic.Position())
	require.True(t, reg.IsRetained(3))

	// Moves track position and delta.
	reg.BeginFrame([]touch.Sample{{Finger: 3, Position: geometry.Vec2{X: 40, Y: 20}, Delta: geometry.Vec2{X: 5, Y: 10}, Phase: touch.PhaseMoved}})
	require.Equal(t, OutcomeUpdated, g.Advance(reg))
	require.Equal(t, geometry.Vec2{X: 40, Y: 20}, logic.Position())
	require.Equal(t, geometry.Vec2{X: 5, Y: 10}, logic.Delta())

	// Lift completes and releases.
	reg.BeginFrame([]touch.Sample{{Finger: 3, Position: geometry.Vec2{X: 40, Y: 20}, Phase: touch.PhaseEnded}})
	require.Equal(t, OutcomeCompleted, g.Advance(reg))
	require.False(t, reg.IsRetained(3))
}

func TestDragVanishedFingerAborts(t *testing.T) {
	reg := newTestRegistry()
	s := touch.Sample{Finger: 3, Position: geometry.Vec2{X: 10, Y: 10}, Phase: touch.PhaseBegan}
	reg.BeginFrame([]touch.Sample{s})
	g := New(NewDrag(s, testSlop, nil))
	g.Advance(reg)

	reg.BeginFrame(nil)
	require.Equal(t, OutcomeCancelled, g.Advance(reg))
	require.Equal(t, StateCancelled, g.State())
}
