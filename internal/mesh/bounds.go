package mesh

import (
	"fmt"
	"math"

	"roomscan-viewer/internal/mathutil"
)

// Bounds is the axis-aligned bounding box of a model's geometry.
type Bounds struct {
	Center       mathutil.Vec3
	Size         mathutil.Vec3
	MaxDimension float64
}

// ComputeBounds computes the axis-aligned bounds over all meshes.
// Returns an error for empty geometry, non-finite coordinates, or a
// degenerate extent (any axis ≤ 0) — callers must not attach such a
// model to the scene.
func ComputeBounds(meshes []Mesh) (Bounds, error) {
	min := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

	count := 0
	for _, m := range meshes {
		for _, v := range m.Verts {
			count++
			for k := 0; k < 3; k++ {
				c := float64(v[k])
				if c < min[k] {
					min[k] = c
				}
				if c > max[k] {
					max[k] = c
				}
			}
		}
	}

	if count == 0 {
		return Bounds{}, fmt.Errorf("mesh: no vertices")
	}
	if !min.IsFinite() || !max.IsFinite() {
		return Bounds{}, fmt.Errorf("mesh: non-finite bounds")
	}

	size := max.Sub(min)
	for k := 0; k < 3; k++ {
		if size[k] <= 0 {
			return Bounds{}, fmt.Errorf("mesh: degenerate extent on axis %d (%g)", k, size[k])
		}
	}

	return Bounds{
		Center:       min.Add(max).Scale(0.5),
		Size:         size,
		MaxDimension: size.MaxComponent(),
	}, nil
}

// Translate shifts every vertex of every mesh by d.
func Translate(meshes []Mesh, d mathutil.Vec3) {
	for _, m := range meshes {
		for i := range m.Verts {
			m.Verts[i][0] += float32(d[0])
			m.Verts[i][1] += float32(d[1])
			m.Verts[i][2] += float32(d[2])
		}
	}
}

// Rescale multiplies every vertex of every mesh by factor.
func Rescale(meshes []Mesh, factor float64) {
	f := float32(factor)
	for _, m := range meshes {
		for i := range m.Verts {
			m.Verts[i][0] *= f
			m.Verts[i][1] *= f
			m.Verts[i][2] *= f
		}
	}
}
