// Package viewer owns all per-session 3D state: the virtual camera, the
// scene, the single in-flight entrance animation, and the current model.
// It is single-threaded by contract — one goroutine (or test) drives all
// methods, mirroring a UI event loop.
package viewer

import (
	"image"
	"time"

	"roomscan-viewer/internal/camera"
	"roomscan-viewer/internal/model"
	"roomscan-viewer/internal/raster"
	"roomscan-viewer/internal/scanlib"
	"roomscan-viewer/internal/scene"
	"roomscan-viewer/internal/snapshot"
	"roomscan-viewer/internal/texture"
)

// Viewer is one interactive viewing session.
type Viewer struct {
	Controls *camera.Controls
	Scene    *scene.Scene

	run       *camera.Run // active entrance animation, nil when idle
	animating bool
	dirty     bool

	current     *model.Model
	currentDesc scanlib.Descriptor

	renderSize  int
	supersample int
}

// New creates a viewer with an empty scene.
func New(cache *texture.Cache, renderSize, supersample int) *Viewer {
	if renderSize <= 0 {
		renderSize = 512
	}
	if supersample <= 0 {
		supersample = 1
	}
	return &Viewer{
		Controls:    camera.NewControls(),
		Scene:       scene.New(cache),
		renderSize:  renderSize,
		supersample: supersample,
		dirty:       true,
	}
}

// LoadModel switches the session to a new scan: tear down the old model,
// load and normalize the new one, calibrate the camera to its original
// size, and play the entrance fly-in. On failure the previous model is
// re-attached (or the scene stays empty on a first load) and the error
// is returned for the UI; camera and lighting keep their last state.
func (v *Viewer) LoadModel(desc scanlib.Descriptor, now time.Time) error {
	prev, prevDesc := v.current, v.currentDesc
	v.prepareForNewModel()

	m, err := model.Load(desc.ModelPath, desc.DisplayName, desc.Format, desc.HasMaterials)
	if err != nil {
		if prev != nil {
			// Geometry buffers were dropped on teardown; reload the
			// last-good scan from disk. A second failure leaves the
			// scene empty rather than half-built.
			if restored, rerr := model.Load(prevDesc.ModelPath, prevDesc.DisplayName, prevDesc.Format, prevDesc.HasMaterials); rerr == nil {
				v.attach(restored, prevDesc, now)
			}
		}
		return err
	}

	v.attach(m, desc, now)
	return nil
}

func (v *Viewer) attach(m *model.Model, desc scanlib.Descriptor, now time.Time) {
	v.Scene.AttachModel(m)
	v.current = m
	v.currentDesc = desc
	v.Controls.SetReferenceSize(float32(m.OriginalMax))

	v.animating = true
	v.run = camera.StartEntrance(v.Controls, m.IsSmall(), now, func() {
		v.animating = false
	})
	v.dirty = true
}

// prepareForNewModel runs the full teardown: cancel any in-flight
// entrance animation, clear the scene (releasing the old model's
// geometry and textures and sweeping strays), and reset the camera to
// the default resting pose.
func (v *Viewer) prepareForNewModel() {
	if v.run != nil {
		v.run.Cancel()
		v.run = nil
	}
	v.animating = false
	v.Scene.Clear()
	v.current = nil
	v.currentDesc = scanlib.Descriptor{}
	v.Controls.Reset()
	v.Controls.Update()
	v.dirty = true
}

// Step advances the entrance animation (if any) to time now and reflects
// the pose onto the render camera. Call once per frame.
func (v *Viewer) Step(now time.Time) {
	if v.run != nil {
		if done := v.run.Step(now); done {
			v.run = nil
		}
		v.dirty = true
	}
	v.Controls.Update()
}

// Animating reports whether the entrance fly-in is still in control of
// the camera. While true, all user camera input is suppressed — this is
// the sole mechanism preventing conflicting pose writes.
func (v *Viewer) Animating() bool { return v.animating }

// Pan moves the camera in the view plane; ignored while animating.
func (v *Viewer) Pan(dx, dy float32) {
	if v.animating {
		return
	}
	v.Controls.Pan(dx, dy)
	v.Controls.Update()
	v.dirty = true
}

// Rotate adjusts yaw/pitch; ignored while animating.
func (v *Viewer) Rotate(dx, dy float32) {
	if v.animating {
		return
	}
	v.Controls.Rotate(dx, dy)
	v.Controls.Update()
	v.dirty = true
}

// Zoom moves along the view direction; ignored while animating.
func (v *Viewer) Zoom(delta float32) {
	if v.animating {
		return
	}
	v.Controls.MoveForward(delta)
	v.Controls.Update()
	v.dirty = true
}

// ResetCamera restores the default resting pose; ignored while animating.
func (v *Viewer) ResetCamera() {
	if v.animating {
		return
	}
	v.Controls.Reset()
	v.Controls.Update()
	v.dirty = true
}

// SetLighting applies a lighting preset. Not gated on animation: lighting
// does not touch the pose.
func (v *Viewer) SetLighting(p scene.Preset) {
	v.Scene.ApplyPreset(p)
	v.dirty = true
}

// SetGridVisible toggles the ground grid.
func (v *Viewer) SetGridVisible(visible bool) {
	v.Scene.GridVisible = visible
	v.dirty = true
}

// Dirty reports whether the next Render would differ from the last, and
// clears the flag.
func (v *Viewer) Dirty() bool {
	d := v.dirty
	v.dirty = false
	return d
}

// Current returns the loaded model, or nil.
func (v *Viewer) Current() *model.Model { return v.current }

// Render rasterizes the current view.
func (v *Viewer) Render() *image.NRGBA {
	return raster.RenderScene(v.Scene, v.Controls.View(), v.renderSize, v.supersample)
}

// Screenshot renders the current view and encodes it as WebP for the
// analysis service.
func (v *Viewer) Screenshot() ([]byte, error) {
	return snapshot.EncodeWebP(v.Render())
}

// Dispose tears the session down. The viewer is unusable afterwards.
func (v *Viewer) Dispose() {
	v.prepareForNewModel()
}
