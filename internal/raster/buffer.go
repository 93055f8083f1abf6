package raster

import "math"

// FrameBuffer holds the render target as flat slices for cache locality.
// Depth convention: pz = −cameraDepth, so greater values are closer and
// the z-buffer initializes to −inf.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H
}

// NewFrameBuffer allocates a zeroed color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// FillVertical paints an opaque top-to-bottom gradient background.
func (fb *FrameBuffer) FillVertical(top, bottom [3]uint8) {
	h := fb.Height
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		r := uint8(float64(top[0]) + (float64(bottom[0])-float64(top[0]))*t)
		g := uint8(float64(top[1]) + (float64(bottom[1])-float64(top[1]))*t)
		b := uint8(float64(top[2]) + (float64(bottom[2])-float64(top[2]))*t)
		row := y * fb.Width * 4
		for x := 0; x < fb.Width; x++ {
			i := row + x*4
			fb.Color[i] = r
			fb.Color[i+1] = g
			fb.Color[i+2] = b
			fb.Color[i+3] = 255
		}
	}
}
