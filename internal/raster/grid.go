package raster

import (
	"math"

	"roomscan-viewer/internal/camera"
	"roomscan-viewer/internal/mathutil"
)

// Grid layout: a ground-plane reference at y=0, one line per unit.
const (
	gridHalfExtent = 10
	gridStep       = 1.0
)

var (
	gridColor = [3]uint8{70, 74, 84}
	axisColor = [3]uint8{110, 116, 130}
)

// DrawGrid renders the ground-plane grid into the framebuffer with
// z-tested line segments, so the model correctly occludes it.
func DrawGrid(fb *FrameBuffer, view camera.View) {
	for i := -gridHalfExtent; i <= gridHalfExtent; i++ {
		c := gridColor
		if i == 0 {
			c = axisColor
		}
		v := float64(i) * gridStep
		e := float64(gridHalfExtent) * gridStep
		drawSegment(fb, view, mathutil.Vec3{v, 0, -e}, mathutil.Vec3{v, 0, e}, c)
		drawSegment(fb, view, mathutil.Vec3{-e, 0, v}, mathutil.Vec3{e, 0, v}, c)
	}
}

// drawSegment projects both endpoints and DDA-steps between them,
// subdividing in world space first so perspective depth interpolates
// acceptably. Segments touching the near plane are dropped.
func drawSegment(fb *FrameBuffer, view camera.View, a, b mathutil.Vec3, c [3]uint8) {
	// Subdivide: long ground lines curve in screen space under perspective.
	const pieces = 16
	for i := 0; i < pieces; i++ {
		t0 := float64(i) / pieces
		t1 := float64(i+1) / pieces
		drawLine(fb, view, a.Lerp(b, t0), a.Lerp(b, t1), c)
	}
}

func drawLine(fb *FrameBuffer, view camera.View, a, b mathutil.Vec3, c [3]uint8) {
	x0, y0, z0, ok0 := ProjectPoint(a, view, fb.Width)
	x1, y1, z1, ok1 := ProjectPoint(b, view, fb.Width)
	if !ok0 || !ok1 {
		return
	}

	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	if steps > fb.Width*2 {
		steps = fb.Width * 2
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(x0 + (x1-x0)*t)
		y := int(y0 + (y1-y0)*t)
		if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
			continue
		}
		z := z0 + (z1-z0)*t
		idx := y*fb.Width + x
		if z <= fb.ZBuf[idx] {
			continue
		}
		fb.ZBuf[idx] = z
		p := idx * 4
		fb.Color[p] = c[0]
		fb.Color[p+1] = c[1]
		fb.Color[p+2] = c[2]
		fb.Color[p+3] = 255
	}
}
