package raster

import (
	"image"

	"roomscan-viewer/internal/camera"
	"roomscan-viewer/internal/mathutil"
	"roomscan-viewer/internal/mesh"
	"roomscan-viewer/internal/scene"
	"roomscan-viewer/internal/texture"
)

// Background gradient.
var (
	bgTop    = [3]uint8{24, 27, 34}
	bgBottom = [3]uint8{42, 46, 56}
)

// RenderScene rasterizes the scene from the given camera view into an
// NRGBA image of size×size pixels, rendering internally at
// size×supersample and downsampling.
func RenderScene(sc *scene.Scene, view camera.View, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample

	fb := NewFrameBuffer(renderSize, renderSize)
	fb.FillVertical(bgTop, bgBottom)

	if sc.GridVisible {
		DrawGrid(fb, view)
	}

	viewDir := viewForward(view)
	lc := BuildLightConfig(sc.Lights, viewDir)

	for _, node := range sc.Nodes {
		if node.Kind != scene.NodeModel || node.Model == nil {
			continue
		}
		for mi := range node.Model.Meshes {
			renderMesh(fb, &node.Model.Meshes[mi], view, sc.Textures, &lc)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)

	if supersample > 1 {
		img = Downsample(img, size)
	}
	return img
}

// viewForward recovers the world-space view direction from the
// world→camera rotation: the camera looks down −Z in its own space, so
// the forward vector is the transpose's third column negated.
func viewForward(view camera.View) mathutil.Vec3 {
	r := view.Rotation
	return mathutil.Vec3{-r[6], -r[7], -r[8]}
}

func renderMesh(fb *FrameBuffer, m *mesh.Mesh, view camera.View, resolver texture.Resolver, lc *LightConfig) {
	if len(m.Verts) == 0 || len(m.Tris) == 0 {
		return
	}

	px, py, pz := ProjectVertices(m.Verts, view, fb.Width)

	var tex *image.NRGBA
	if m.TexPath != "" && resolver != nil {
		tex = resolver.Resolve(m.TexPath)
	}

	defR := clamp255(m.Diffuse[0] * 255)
	defG := clamp255(m.Diffuse[1] * 255)
	defB := clamp255(m.Diffuse[2] * 255)

	for _, tri := range m.Tris {
		n, ok := faceNormal(m, tri)
		if !ok {
			continue
		}
		shade := lc.ComputeShade(n)
		RasterizeTriangle(fb, px, py, pz, m.UVs, tri.VI, tri.TI, tex, defR, defG, defB, shade, lc)
	}
}

// faceNormal computes the world-space geometric normal for flat shading.
func faceNormal(m *mesh.Mesh, tri mesh.Triangle) (mathutil.Vec3, bool) {
	nv := len(m.Verts)
	for _, i := range tri.VI {
		if i < 0 || i >= nv {
			return mathutil.Vec3{}, false
		}
	}
	v0 := m.Verts[tri.VI[0]]
	v1 := m.Verts[tri.VI[1]]
	v2 := m.Verts[tri.VI[2]]

	e1 := mathutil.Vec3{float64(v1[0] - v0[0]), float64(v1[1] - v0[1]), float64(v1[2] - v0[2])}
	e2 := mathutil.Vec3{float64(v2[0] - v0[0]), float64(v2[1] - v0[1]), float64(v2[2] - v0[2])}
	n := e1.Cross(e2)
	if n.Len() < 1e-12 {
		return mathutil.Vec3{}, false
	}
	return n.Normalize(), true
}
