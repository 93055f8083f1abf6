package camera

import (
	"github.com/chewxy/math32"

	"roomscan-viewer/internal/mathutil"
)

// Vec is a float32 3-vector for pose math.
type Vec struct {
	X, Y, Z float32
}

func (a Vec) Add(b Vec) Vec        { return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec) Sub(b Vec) Vec        { return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vec) Scale(s float32) Vec  { return Vec{v.X * s, v.Y * s, v.Z * s} }
func (v Vec) Len() float32         { return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

func (a Vec) Lerp(b Vec, t float32) Vec {
	return Vec{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Pose is the virtual camera placement, decoupled from the render camera
// until Update copies it over. Pitch stays strictly inside (−π/2, π/2);
// ReferenceSize never drops below the floor.
type Pose struct {
	Position Vec
	Yaw      float32 // radians around world Y; 0 looks down −Z
	Pitch    float32 // radians; positive looks up
	Roll     float32

	// ReferenceSize is the original max dimension of the loaded model,
	// set once per successful load. Drives the adaptive speed curve.
	ReferenceSize float32
}

const (
	pitchLimit         = math32.Pi/2 - 0.01
	referenceSizeFloor = 0.05
)

// Forward is the unit view direction for the current yaw/pitch.
func (p Pose) Forward() Vec {
	cp := math32.Cos(p.Pitch)
	return Vec{
		-math32.Sin(p.Yaw) * cp,
		math32.Sin(p.Pitch),
		-math32.Cos(p.Yaw) * cp,
	}
}

// Right is the view-relative unit right vector, flat in the ground plane.
func (p *Pose) Right() Vec {
	return Vec{math32.Cos(p.Yaw), 0, -math32.Sin(p.Yaw)}
}

// Up is the view-relative unit up vector: right × forward.
func (p *Pose) Up() Vec {
	r := p.Right()
	f := p.Forward()
	return Vec{
		r.Y*f.Z - r.Z*f.Y,
		r.Z*f.X - r.X*f.Z,
		r.X*f.Y - r.Y*f.X,
	}
}

// LookAt orients the pose toward target by explicit yaw/pitch
// decomposition of the view direction. Roll is zeroed.
func (p *Pose) LookAt(target Vec) {
	d := target.Sub(p.Position)
	l := d.Len()
	if l < 1e-6 {
		return
	}
	d = d.Scale(1 / l)
	p.Pitch = clamp32(math32.Asin(d.Y), -pitchLimit, pitchLimit)
	p.Yaw = math32.Atan2(-d.X, -d.Z)
	p.Roll = 0
}

// View is the render-facing camera state the rasterizer consumes:
// a world→camera rotation plus the eye position. Camera space looks
// down −Z.
type View struct {
	Position mathutil.Vec3
	Rotation mathutil.Mat3
	FOVDeg   float64
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
