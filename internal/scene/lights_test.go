package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscan-viewer/internal/texture"
)

// Every preset must define a positive intensity for every role: a
// missing entry would silently turn a light off.
func TestPresetIntensityTotal(t *testing.T) {
	for _, p := range []Preset{PresetNormal, PresetBright, PresetStudio} {
		for r := LightRole(0); r < numLightRoles; r++ {
			assert.Greater(t, PresetIntensity(p, r), 0.0, "%s/%s", p, r)
		}
	}
}

func TestApplyPresetSetsEveryLight(t *testing.T) {
	s := New(texture.NewCache())
	require.Len(t, s.Lights, int(numLightRoles))

	s.ApplyPreset(PresetStudio)
	assert.Equal(t, PresetStudio, s.Preset)
	for _, l := range s.Lights {
		assert.Equal(t, PresetIntensity(PresetStudio, l.Role), l.Intensity, l.Role)
	}
}

// Switching presets and back must restore the exact original values;
// preset application is a pure function of (preset, role), not a
// relative adjustment.
func TestPresetRoundTrip(t *testing.T) {
	s := New(texture.NewCache())

	original := make([]float64, len(s.Lights))
	for i, l := range s.Lights {
		original[i] = l.Intensity
	}

	s.ApplyPreset(PresetBright)
	s.ApplyPreset(PresetStudio)
	s.ApplyPreset(PresetNormal)

	for i, l := range s.Lights {
		assert.Equal(t, original[i], l.Intensity, l.Role)
	}
}

func TestApplyPresetIdempotent(t *testing.T) {
	s := New(texture.NewCache())
	s.ApplyPreset(PresetBright)
	first := make([]float64, len(s.Lights))
	for i, l := range s.Lights {
		first[i] = l.Intensity
	}

	s.ApplyPreset(PresetBright)
	for i, l := range s.Lights {
		assert.Equal(t, first[i], l.Intensity)
	}
}

func TestParsePreset(t *testing.T) {
	assert.Equal(t, PresetBright, ParsePreset("bright"))
	assert.Equal(t, PresetStudio, ParsePreset("studio"))
	assert.Equal(t, PresetNormal, ParsePreset("normal"))
	assert.Equal(t, PresetNormal, ParsePreset("disco"))
	assert.Equal(t, PresetNormal, ParsePreset(""))
}

func TestDirectionalLightsAreUnit(t *testing.T) {
	for _, l := range defaultLights() {
		switch l.Role {
		case Ambient, Hemisphere:
			continue
		}
		assert.InDelta(t, 1.0, l.Dir.Len(), 1e-9, l.Role)
	}
}
