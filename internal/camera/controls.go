package camera

import (
	"github.com/chewxy/math32"

	"roomscan-viewer/internal/mathutil"
)

// Speed tuning. The adaptive scale multiplies these base speeds and is
// clamped to [minSpeedScale, maxSpeedScale] so neither dollhouse-sized
// nor building-sized scans produce unusable input response.
const (
	basePanSpeed    = 0.005
	baseRotateSpeed = 0.004
	baseMoveSpeed   = 0.25

	minSpeedScale = 0.2
	maxSpeedScale = 8.0

	defaultFOVDeg = 60
)

// Controls owns the virtual camera pose and reflects it onto the render
// camera on Update. Pan, rotate, and forward motion scale with the
// tracked model size; inputs are trusted finite values from the UI layer.
type Controls struct {
	pose Pose
	view View
}

// NewControls returns controls at the default resting pose with the
// reference size at its floor.
func NewControls() *Controls {
	c := &Controls{}
	c.Reset()
	c.pose.ReferenceSize = referenceSizeFloor
	c.view.FOVDeg = defaultFOVDeg
	c.Update()
	return c
}

// Reset restores the fixed default resting pose. The reference size is
// kept: it belongs to the loaded model, not to the pose.
func (c *Controls) Reset() {
	c.pose.Position = Vec{0, 2, 8}
	c.pose.Yaw = 0
	c.pose.Pitch = -0.15
	c.pose.Roll = 0
}

// Pose returns a copy of the current pose.
func (c *Controls) Pose() Pose { return c.pose }

// SetPosition places the camera; used by the entrance animation.
func (c *Controls) SetPosition(p Vec) { c.pose.Position = p }

// LookAt orients the camera toward target.
func (c *Controls) LookAt(target Vec) { c.pose.LookAt(target) }

// SetReferenceSize stores the model's original max dimension, clamped to
// a positive floor. Called once per successful model load.
func (c *Controls) SetReferenceSize(size float32) {
	if size < referenceSizeFloor {
		size = referenceSizeFloor
	}
	c.pose.ReferenceSize = size
}

// SpeedScale is the size-adaptive speed multiplier: sub-linear below a
// reference size of 1 (suppressing speed for small objects), linear above,
// clamped to a fixed band. Monotonically non-decreasing in the reference
// size.
func (c *Controls) SpeedScale() float32 {
	s := c.pose.ReferenceSize
	var f float32
	if s < 1 {
		f = math32.Sqrt(s)
	} else {
		f = s
	}
	return clamp32(f, minSpeedScale, maxSpeedScale)
}

// MoveForward translates along the current view direction. No bounds
// checking: world extent is unlimited and the clip planes are set wide.
func (c *Controls) MoveForward(distance float32) {
	d := c.pose.Forward().Scale(distance * baseMoveSpeed * c.SpeedScale())
	c.pose.Position = c.pose.Position.Add(d)
}

// Pan translates along the view-relative right/up plane. Screen drag
// deltas are inverted on the horizontal axis so dragging right pans the
// view left.
func (c *Controls) Pan(dx, dy float32) {
	speed := basePanSpeed * c.SpeedScale()
	r := c.pose.Right().Scale(-dx * speed)
	u := c.pose.Up().Scale(dy * speed)
	c.pose.Position = c.pose.Position.Add(r).Add(u)
}

// Rotate adjusts yaw and pitch from drag deltas, clamping pitch away
// from the poles to prevent gimbal flip.
func (c *Controls) Rotate(dx, dy float32) {
	speed := baseRotateSpeed * c.SpeedScale()
	c.pose.Yaw -= dx * speed
	c.pose.Pitch = clamp32(c.pose.Pitch-dy*speed, -pitchLimit, pitchLimit)
}

// Update copies the stored pose onto the render camera and recomputes
// its world→camera rotation. Idempotent; called after every mutation and
// once per frame so externally driven pose changes are reflected too.
func (c *Controls) Update() {
	c.view.Position = mathutil.Vec3{
		float64(c.pose.Position.X),
		float64(c.pose.Position.Y),
		float64(c.pose.Position.Z),
	}
	// World→camera is the transpose of RotY(yaw)·RotX(pitch)·RotZ(roll).
	c.view.Rotation = mathutil.Mat3Mul(
		mathutil.RotZ(-float64(c.pose.Roll)),
		mathutil.Mat3Mul(
			mathutil.RotX(-float64(c.pose.Pitch)),
			mathutil.RotY(-float64(c.pose.Yaw)),
		),
	)
	if c.view.FOVDeg == 0 {
		c.view.FOVDeg = defaultFOVDeg
	}
}

// View returns the render camera state as of the last Update.
func (c *Controls) View() View { return c.view }
