package model

// SizeClass is a coarse classification of a model's original scale,
// taken before any visibility rescaling. It selects the entrance
// animation poses and how aggressively small models are rescaled.
type SizeClass int

const (
	SizeSmall SizeClass = iota
	SizeLarge
)

func (c SizeClass) String() string {
	if c == SizeSmall {
		return "small"
	}
	return "large"
}

// Size policy. Models under SmallThreshold are classed small; small models
// are rescaled so their largest dimension lands in a visible range, with
// very tiny models pushed harder than moderately small ones. Large models
// keep their original scale.
const (
	SmallThreshold = 3.0
	TinyThreshold  = 1.0

	TinyTargetSize  = 5.0
	SmallTargetSize = 3.0
)

// ClassifySize thresholds the original (pre-rescale) max dimension.
func ClassifySize(maxDimension float64) SizeClass {
	if maxDimension < SmallThreshold {
		return SizeSmall
	}
	return SizeLarge
}

// RescaleFactor returns the visibility scale multiplier for a model with
// the given original max dimension. Large models return 1.
func RescaleFactor(maxDimension float64) float64 {
	switch {
	case maxDimension <= 0:
		return 1
	case maxDimension < TinyThreshold:
		return TinyTargetSize / maxDimension
	case maxDimension < SmallThreshold:
		return SmallTargetSize / maxDimension
	default:
		return 1
	}
}
