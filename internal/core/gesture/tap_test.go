package gesture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/touchsync/touchsync/internal/core/geometry"
	"github.com/touchsync/touchsync/internal/core/touch"
)

func beganTap(reg *touch.Registry, maxFrames uint64) (*Tap, *Gesture) {
	s := touch.Sample{Finger: 1, Position: geometry.Vec2{X: 50, Y: 50}, Phase: touch.PhaseBegan}
	reg.BeginFrame([]touch.Sample{s})
	logic := NewTap(s, testSlop, maxFrames, nil)
	return logic, New(logic)
}

func TestTapCompletes(t *testing.T) {
	reg := newTestRegistry()
	_, g := beganTap(reg, 10)

	require.Equal(t, OutcomeStarted, g.Advance(reg))
	require.True(t, reg.IsRetained(1))

	reg.BeginFrame([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 50, Y: 50}, Phase: touch.PhaseStationary}})
	require.Equal(t, OutcomeNone, g.Advance(reg))

	reg.BeginFrame([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 50, Y: 50}, Phase: touch.PhaseEnded}})
	require.Equal(t, OutcomeCompleted, g.Advance(reg))
	require.False(t, reg.IsRetained(1))
}

func TestTapCancelsWhenItBecomesADrag(t *testing.T) {
	reg := newTestRegistry()
	_, g := beganTap(reg, 10)
	g.Advance(reg)

	// 30px of travel exceeds the 20px slop: not a tap anymore.
	reg.BeginFrame([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 80, Y: 50}, Delta: geometry.Vec2{X: 30}, Phase: touch.PhaseMoved}})
	require.Equal(t, OutcomeCancelled, g.Advance(reg))
	require.Equal(t, StateCancelled, g.State())
	require.False(t, reg.IsRetained(1), "cancelled tap frees the finger for other recognizers")
}

func TestTapCancelsWhenHeldTooLong(t *testing.T) {
	reg := newTestRegistry()
	_, g := beganTap(reg, 2)
	g.Advance(reg)

	for i := 0; i < 2; i++ {
		reg.BeginFrame([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 50, Y: 50}, Phase: touch.PhaseStationary}})
		require.Equal(t, OutcomeNone, g.Advance(reg))
	}

	reg.BeginFrame([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 50, Y: 50}, Phase: touch.PhaseStationary}})
	require.Equal(t, OutcomeCancelled, g.Advance(reg))
	require.False(t, reg.IsRetained(1))
}

func TestTapJitterWithinSlopStillCompletes(t *testing.T) {
	reg := newTestRegistry()
	_, g := beganTap(reg, 10)
	g.Advance(reg)

	reg.BeginFrame([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 55, Y: 52}, Delta: geometry.Vec2{X: 5, Y: 2}, Phase: touch.PhaseMoved}})
	require.Equal(t, OutcomeUpdated, g.Advance(reg))

	reg.BeginFrame([]touch.Sample{{Finger: 1, Position: geometry.Vec2{X: 55, Y: 52}, Phase: touch.PhaseEnded}})
	require.Equal(t, OutcomeCompleted, g.Advance(reg))
}

func TestTapOnRetainedFingerAborts(t *testing.T) {
	reg := newTestRegistry()
	_, g := beganTap(reg, 10)

	reg.Lock(1)
	require.Equal(t, OutcomeCancelled, g.Advance(reg))
	require.True(t, reg.IsRetained(1), "retention belongs to the other gesture")
}
