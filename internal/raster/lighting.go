package raster

import (
	"math"

	"roomscan-viewer/internal/mathutil"
	"roomscan-viewer/internal/scene"
)

// dirLight is one directional contribution, precomputed from the scene rig.
type dirLight struct {
	Dir       mathutil.Vec3
	Intensity float64
}

// LightConfig holds the shading parameters for one render, derived from
// the scene's role-tagged lights so preset changes show up immediately.
type LightConfig struct {
	Ambient  float64
	Hemi     float64
	Dirs     []dirLight
	HalfMain mathutil.Vec3 // Blinn-Phong half-vector for the primary light

	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// BuildLightConfig folds the scene lights into shading terms. viewDir is
// the world-space unit view direction.
func BuildLightConfig(lights []*scene.Light, viewDir mathutil.Vec3) LightConfig {
	lc := LightConfig{
		SpecInt:  0.35,
		SpecPow:  12.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
	for _, l := range lights {
		switch l.Role {
		case scene.Ambient:
			lc.Ambient = l.Intensity
		case scene.Hemisphere:
			lc.Hemi = l.Intensity
		default:
			lc.Dirs = append(lc.Dirs, dirLight{Dir: l.Dir, Intensity: l.Intensity})
			if l.Role == scene.DirectionalPrimary {
				lc.HalfMain = l.Dir.Sub(viewDir).Normalize()
			}
		}
	}
	return lc
}

// ComputeShade returns the combined lighting scalar for a world-space
// face normal. Lambert terms use abs for double-sided scan geometry.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	shade := lc.Ambient

	// Hemisphere fill, strongest on walls so room interiors stay readable.
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5
	shade += hemi * lc.Hemi

	for _, d := range lc.Dirs {
		shade += math.Abs(normal.Dot(d.Dir)) * d.Intensity
	}

	// Blinn-Phong specular on the primary light only.
	ndh := normal.Dot(lc.HalfMain)
	if ndh > 0 {
		shade += math.Pow(ndh, lc.SpecPow) * lc.SpecInt
	}
	return shade
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
