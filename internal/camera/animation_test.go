package camera

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func TestEntrancePlacesStartPoseImmediately(t *testing.T) {
	c := NewControls()
	StartEntrance(c, true, t0, nil)
	assert.Equal(t, smallStart, c.Pose().Position)

	c2 := NewControls()
	StartEntrance(c2, false, t0, nil)
	assert.Equal(t, largeStart, c2.Pose().Position)
}

func TestEntranceProgressMonotonic(t *testing.T) {
	c := NewControls()
	r := StartEntrance(c, false, t0, nil)

	// Distance from the start pose must never decrease while stepping
	// forward in time.
	var prev float32
	for ms := 0; ms <= 2000; ms += 50 {
		r.Step(t0.Add(time.Duration(ms) * time.Millisecond))
		d := c.Pose().Position.Sub(largeStart).Len()
		assert.GreaterOrEqual(t, d, prev, "at %dms", ms)
		prev = d
	}
}

func TestEntranceCompletesExactlyOnce(t *testing.T) {
	c := NewControls()
	calls := 0
	r := StartEntrance(c, true, t0, func() { calls++ })

	assert.False(t, r.Step(t0.Add(900*time.Millisecond)))
	assert.True(t, r.Running())

	require.True(t, r.Step(t0.Add(EntranceDuration)))
	assert.Equal(t, 1, calls)
	assert.False(t, r.Running())

	// Pose snaps to the exact target, no interpolation residue.
	assert.Equal(t, smallTarget, c.Pose().Position)

	// Further steps are inert and never re-fire the callback.
	assert.True(t, r.Step(t0.Add(5*time.Second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, smallTarget, c.Pose().Position)
}

func TestEntranceLooksAtOriginThroughout(t *testing.T) {
	c := NewControls()
	r := StartEntrance(c, false, t0, nil)

	for ms := 0; ms <= 1800; ms += 300 {
		r.Step(t0.Add(time.Duration(ms) * time.Millisecond))
		p := c.Pose()
		d := Vec{}.Sub(p.Position)
		l := d.Len()
		require.Greater(t, l, float32(0))
		d = d.Scale(1 / l)
		f := p.Forward()
		assert.InDelta(t, float64(d.X), float64(f.X), 1e-4, "at %dms", ms)
		assert.InDelta(t, float64(d.Y), float64(f.Y), 1e-4, "at %dms", ms)
		assert.InDelta(t, float64(d.Z), float64(f.Z), 1e-4, "at %dms", ms)
	}
}

func TestEntranceCancelStopsMutation(t *testing.T) {
	c := NewControls()
	calls := 0
	r := StartEntrance(c, true, t0, func() { calls++ })
	r.Step(t0.Add(400 * time.Millisecond))
	frozen := c.Pose().Position

	r.Cancel()
	assert.False(t, r.Running())
	assert.True(t, r.Step(t0.Add(EntranceDuration)))
	assert.Equal(t, frozen, c.Pose().Position)
	assert.Equal(t, 0, calls, "callback must not fire after cancel")
}

// Starting a new run after cancelling the old one must land exactly on
// the second run's target, with no contribution from the first.
func TestEntranceRestartReplacesRun(t *testing.T) {
	c := NewControls()
	first := StartEntrance(c, false, t0, nil)
	first.Step(t0.Add(600 * time.Millisecond))
	first.Cancel()

	second := StartEntrance(c, true, t0.Add(time.Second), nil)
	assert.Equal(t, smallStart, c.Pose().Position)

	require.True(t, second.Step(t0.Add(time.Second+EntranceDuration)))
	assert.Equal(t, smallTarget, c.Pose().Position)

	// The stale run stays inert.
	assert.True(t, first.Step(t0.Add(10*time.Second)))
	assert.Equal(t, smallTarget, c.Pose().Position)
}

func TestCancelAfterCompletionIsNoOp(t *testing.T) {
	c := NewControls()
	r := StartEntrance(c, true, t0, nil)
	require.True(t, r.Step(t0.Add(EntranceDuration)))

	r.Cancel()
	assert.False(t, r.Running())
	assert.Equal(t, smallTarget, c.Pose().Position)
}
