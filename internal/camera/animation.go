package camera

import (
	"time"

	"roomscan-viewer/internal/mathutil"
)

// Entrance fly-in poses. Small models start just above the base plane and
// settle near the ground; large models start high overhead and settle at
// eye level. Both end looking at the world origin.
var (
	smallStart  = Vec{0, 0.4, 6}
	smallTarget = Vec{0, 0.9, 4.5}
	largeStart  = Vec{0, 18, 22}
	largeTarget = Vec{0, 1.7, 7}
)

// EntranceDuration is the fixed fly-in length.
const EntranceDuration = 1800 * time.Millisecond

// Run is one in-flight entrance animation. At most one Run may mutate a
// given Controls at a time; callers must Cancel the previous Run before
// starting another. Cancellation is cooperative: Cancel only flips a
// flag checked at the top of every Step.
type Run struct {
	controls  *Controls
	start     Vec
	target    Vec
	startedAt time.Time
	duration  time.Duration

	cancelled  bool
	completed  bool
	onComplete func()
}

// StartEntrance begins the fly-in for the current model, placing the
// camera at the start pose immediately. onComplete fires exactly once,
// when progress reaches 1; it never fires after Cancel.
func StartEntrance(c *Controls, isSmallModel bool, now time.Time, onComplete func()) *Run {
	r := &Run{
		controls:   c,
		start:      smallStart,
		target:     smallTarget,
		startedAt:  now,
		duration:   EntranceDuration,
		onComplete: onComplete,
	}
	if !isSmallModel {
		r.start = largeStart
		r.target = largeTarget
	}

	c.SetPosition(r.start)
	c.LookAt(Vec{})
	c.Update()
	return r
}

// Step advances the animation to time now and returns true when the run
// is finished (completed or cancelled). Progress is monotonic in elapsed
// time and clamped so it reaches exactly 1, never beyond.
func (r *Run) Step(now time.Time) bool {
	if r.cancelled || r.completed {
		return true
	}

	t := float64(now.Sub(r.startedAt)) / float64(r.duration)
	t = mathutil.Clamp(t, 0, 1)
	p := mathutil.EaseInOutQuad(t)

	r.controls.SetPosition(r.start.Lerp(r.target, float32(p)))
	// Orientation tracks the origin every step rather than being
	// interpolated, so the camera faces center throughout the run.
	r.controls.LookAt(Vec{})

	if t >= 1 {
		// Snap to the exact target to shed interpolation residue, then
		// derive the final orientation from the look-at decomposition.
		r.controls.SetPosition(r.target)
		r.controls.LookAt(Vec{})
		r.controls.Update()
		r.completed = true
		if r.onComplete != nil {
			r.onComplete()
		}
		return true
	}

	r.controls.Update()
	return false
}

// Cancel stops the run; no further pose mutation happens and the
// completion callback is never invoked. Calling it after completion is a
// no-op.
func (r *Run) Cancel() {
	if r.completed {
		return
	}
	r.cancelled = true
}

// Running reports whether the run is still stepping.
func (r *Run) Running() bool {
	return !r.cancelled && !r.completed
}
