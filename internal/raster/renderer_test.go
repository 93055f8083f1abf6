package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscan-viewer/internal/camera"
	"roomscan-viewer/internal/mesh"
	"roomscan-viewer/internal/model"
	"roomscan-viewer/internal/scene"
	"roomscan-viewer/internal/texture"
)

// frontQuad is a 2×2 quad facing the camera at the origin.
func frontQuad() *model.Model {
	m := mesh.Mesh{
		Verts: [][3]float32{
			{-1, 0, 0}, {1, 0, 0}, {1, 2, 0}, {-1, 2, 0},
		},
		Tris: []mesh.Triangle{
			{VI: [3]int{0, 1, 2}, TI: [3]int{-1, -1, -1}, NI: [3]int{-1, -1, -1}},
			{VI: [3]int{0, 2, 3}, TI: [3]int{-1, -1, -1}, NI: [3]int{-1, -1, -1}},
		},
		Diffuse: [3]float64{0.9, 0.2, 0.2},
	}
	return &model.Model{Name: "quad", Meshes: []mesh.Mesh{m}}
}

func frontView() camera.View {
	c := camera.NewControls()
	c.SetPosition(camera.Vec{X: 0, Y: 1, Z: 6})
	c.LookAt(camera.Vec{Y: 1})
	c.Update()
	return c.View()
}

func TestRenderSceneSize(t *testing.T) {
	sc := scene.New(texture.NewCache())
	img := RenderScene(sc, frontView(), 64, 1)
	require.NotNil(t, img)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	// Supersampled renders come back at the requested output size.
	img = RenderScene(sc, frontView(), 64, 2)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestRenderSceneDrawsModel(t *testing.T) {
	view := frontView()

	empty := scene.New(texture.NewCache())
	empty.GridVisible = false
	bg := RenderScene(empty, view, 64, 1)

	sc := scene.New(texture.NewCache())
	sc.GridVisible = false
	sc.AttachModel(frontQuad())
	got := RenderScene(sc, view, 64, 1)

	assert.NotEqual(t, bg.Pix, got.Pix, "model must change rendered pixels")

	// The quad is centered in view, so the center pixel is covered and
	// carries the red-dominant diffuse.
	c := got.NRGBAAt(32, 32)
	assert.Greater(t, c.R, c.G)
	assert.Greater(t, c.R, c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestRenderSceneGridToggle(t *testing.T) {
	view := frontView()

	withGrid := scene.New(texture.NewCache())
	on := RenderScene(withGrid, view, 64, 1)

	withGrid.GridVisible = false
	off := RenderScene(withGrid, view, 64, 1)

	assert.NotEqual(t, on.Pix, off.Pix)
}

func TestRenderSceneOpaque(t *testing.T) {
	sc := scene.New(texture.NewCache())
	sc.AttachModel(frontQuad())
	img := RenderScene(sc, frontView(), 32, 1)
	for i := 3; i < len(img.Pix); i += 4 {
		require.Equal(t, uint8(255), img.Pix[i], "pixel %d", i/4)
	}
}

func TestProjectVerticesNearClip(t *testing.T) {
	view := frontView()
	verts := [][3]float32{
		{0, 1, 0},  // in front
		{0, 1, 20}, // behind the camera
	}
	_, _, pz := ProjectVertices(verts, view, 64)
	assert.Less(t, pz[0], 0.0)
	assert.NotEqual(t, ClippedZ, pz[0])
	assert.Equal(t, ClippedZ, pz[1])
}

func TestProjectPointCenters(t *testing.T) {
	view := frontView()
	x, y, _, ok := ProjectPoint([3]float64{0, 1, 0}, view, 64)
	require.True(t, ok)
	assert.InDelta(t, 32, x, 0.5)
	assert.InDelta(t, 32, y, 0.5)
}
