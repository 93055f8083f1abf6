package scene

import (
	"fmt"

	"roomscan-viewer/internal/mathutil"
)

// LightRole tags each light at creation time so presets address lights by
// role rather than by runtime type inspection.
type LightRole int

const (
	Ambient LightRole = iota
	DirectionalPrimary
	DirectionalFill1
	DirectionalFill2
	DirectionalTop
	Hemisphere

	numLightRoles
)

func (r LightRole) String() string {
	switch r {
	case Ambient:
		return "ambient"
	case DirectionalPrimary:
		return "directional-primary"
	case DirectionalFill1:
		return "directional-fill1"
	case DirectionalFill2:
		return "directional-fill2"
	case DirectionalTop:
		return "directional-top"
	case Hemisphere:
		return "hemisphere"
	}
	return fmt.Sprintf("light-role-%d", int(r))
}

// Light is one scene light. Direction is meaningful only for the
// directional roles; ambient and hemisphere are positionless.
type Light struct {
	Role      LightRole
	Dir       mathutil.Vec3 // unit vector toward the light
	Intensity float64
}

// Preset names a fixed lighting configuration.
type Preset int

const (
	PresetNormal Preset = iota
	PresetBright
	PresetStudio
)

func (p Preset) String() string {
	switch p {
	case PresetBright:
		return "bright"
	case PresetStudio:
		return "studio"
	}
	return "normal"
}

// ParsePreset maps a wire name to a Preset; unknown names fall back to
// normal.
func ParsePreset(name string) Preset {
	switch name {
	case "bright":
		return PresetBright
	case "studio":
		return PresetStudio
	}
	return PresetNormal
}

// presetIntensity is total: every preset defines every role.
var presetIntensity = map[Preset][numLightRoles]float64{
	PresetNormal: {
		Ambient:            0.55,
		DirectionalPrimary: 1.00,
		DirectionalFill1:   0.35,
		DirectionalFill2:   0.35,
		DirectionalTop:     0.50,
		Hemisphere:         0.50,
	},
	PresetBright: {
		Ambient:            0.80,
		DirectionalPrimary: 1.40,
		DirectionalFill1:   0.50,
		DirectionalFill2:   0.50,
		DirectionalTop:     0.70,
		Hemisphere:         0.70,
	},
	PresetStudio: {
		Ambient:            0.40,
		DirectionalPrimary: 1.60,
		DirectionalFill1:   0.80,
		DirectionalFill2:   0.80,
		DirectionalTop:     1.00,
		Hemisphere:         0.30,
	},
}

// PresetIntensity returns the fixed intensity for (preset, role).
func PresetIntensity(p Preset, r LightRole) float64 {
	return presetIntensity[p][r]
}

// defaultLights builds the fixed, ordered light rig.
func defaultLights() []*Light {
	lights := []*Light{
		{Role: Ambient},
		{Role: DirectionalPrimary, Dir: mathutil.Vec3{0.45, 0.65, 0.35}.Normalize()},
		{Role: DirectionalFill1, Dir: mathutil.Vec3{-0.5, 0.3, -0.6}.Normalize()},
		{Role: DirectionalFill2, Dir: mathutil.Vec3{0.6, 0.2, -0.5}.Normalize()},
		{Role: DirectionalTop, Dir: mathutil.Vec3{0, 1, 0.05}.Normalize()},
		{Role: Hemisphere},
	}
	for _, l := range lights {
		l.Intensity = PresetIntensity(PresetNormal, l.Role)
	}
	return lights
}
