package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySize(t *testing.T) {
	assert.Equal(t, SizeSmall, ClassifySize(0.1))
	assert.Equal(t, SizeSmall, ClassifySize(1.0))
	assert.Equal(t, SizeSmall, ClassifySize(2.999))
	assert.Equal(t, SizeLarge, ClassifySize(3.0))
	assert.Equal(t, SizeLarge, ClassifySize(12.0))
}

func TestRescaleFactorTiers(t *testing.T) {
	// Tiny models are pushed to the tiny target size.
	assert.InDelta(t, 10.0, RescaleFactor(0.5), 1e-9)
	assert.InDelta(t, 12.5, RescaleFactor(0.4), 1e-9)
	assert.InDelta(t, 50.0, RescaleFactor(0.1), 1e-9)

	// Moderately small models land on the small target size.
	assert.InDelta(t, 3.0, RescaleFactor(1.0), 1e-9)
	assert.InDelta(t, 1.5, RescaleFactor(2.0), 1e-9)

	// Large models keep their scale.
	assert.Equal(t, 1.0, RescaleFactor(3.0))
	assert.Equal(t, 1.0, RescaleFactor(20.0))

	// Degenerate input never produces a wild factor.
	assert.Equal(t, 1.0, RescaleFactor(0))
	assert.Equal(t, 1.0, RescaleFactor(-1))
}

func TestRescaleFactorLandsInVisibleRange(t *testing.T) {
	for _, dim := range []float64{0.01, 0.2, 0.5, 0.99, 1.0, 1.5, 2.9} {
		scaled := dim * RescaleFactor(dim)
		assert.GreaterOrEqual(t, scaled, 2.9, "dim %g", dim)
		assert.LessOrEqual(t, scaled, 5.1, "dim %g", dim)
	}
}
