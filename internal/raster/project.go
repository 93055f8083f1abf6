package raster

import (
	"math"

	"roomscan-viewer/internal/camera"
	"roomscan-viewer/internal/mathutil"
)

// nearClip is the minimum camera-space depth. Vertices closer than this
// are marked clipped; any triangle touching one is skipped.
const nearClip = 0.05

// ClippedZ marks a vertex behind the near plane in the pz array.
var ClippedZ = math.Inf(-1)

// ProjectVertices transforms world-space vertices into screen coordinates
// under the view's perspective camera. Returns screen X, screen Y, and a
// depth value where greater means closer (pz = −cameraDepth), matching
// the z-buffer convention.
func ProjectVertices(verts [][3]float32, view camera.View, renderSize int) (px, py, pz []float64) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)

	half := float64(renderSize) / 2
	focal := half / math.Tan(mathutil.Deg2Rad(view.FOVDeg)/2)

	for i := range verts {
		w := mathutil.Vec3{float64(verts[i][0]), float64(verts[i][1]), float64(verts[i][2])}
		t := view.Rotation.MulVec3(w.Sub(view.Position))

		depth := -t[2]
		if depth < nearClip {
			pz[i] = ClippedZ
			continue
		}
		px[i] = half + t[0]*focal/depth
		py[i] = half - t[1]*focal/depth
		pz[i] = -depth
	}
	return px, py, pz
}

// ProjectPoint projects a single world-space point; ok is false when the
// point lies behind the near plane.
func ProjectPoint(p mathutil.Vec3, view camera.View, renderSize int) (x, y, z float64, ok bool) {
	half := float64(renderSize) / 2
	focal := half / math.Tan(mathutil.Deg2Rad(view.FOVDeg)/2)

	t := view.Rotation.MulVec3(p.Sub(view.Position))
	depth := -t[2]
	if depth < nearClip {
		return 0, 0, 0, false
	}
	return half + t[0]*focal/depth, half - t[1]*focal/depth, -depth, true
}
