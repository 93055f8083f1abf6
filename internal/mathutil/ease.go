package mathutil

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EaseInOutQuad remaps linear progress t ∈ [0,1] through a quadratic
// ease-in (first half) and quadratic ease-out (second half).
// Endpoints are preserved exactly: EaseInOutQuad(0) == 0, EaseInOutQuad(1) == 1.
func EaseInOutQuad(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
