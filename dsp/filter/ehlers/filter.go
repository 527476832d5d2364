package ehlers

import "math"

// clampLow and clampHigh bound every trigonometric argument (radians)
// derived from a filter length.
const (
	clampLow  = 0.01
	clampHigh = 0.99
)

// sqrt2Approx is the pole-placement constant used by the published
// super smoother formulas; it is deliberately not math.Sqrt2.
const sqrt2Approx = 1.414

// Filter is a causal per-bar recursive filter.
type Filter interface {
	// ProcessSample consumes the sample for the next bar and returns the
	// filtered value for that bar.
	ProcessSample(x float64) float64
	// Reset returns the filter to its freshly constructed state.
	Reset()
	// Order is the number of warm-up bars that output exactly zero.
	Order() int
}

// ProcessBlock filters src into dst bar by bar. dst must be at least as long
// as src.
func ProcessBlock(f Filter, dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Apply runs src through f and returns a new slice with the outputs.
func Apply(f Filter, src []float64) []float64 {
	if len(src) == 0 {
		return nil
	}
	out := make([]float64, len(src))
	ProcessBlock(f, out, src)
	return out
}

func clampAngle(angle float64) float64 {
	if angle < clampLow {
		return clampLow
	}
	if angle > clampHigh {
		return clampHigh
	}
	return angle
}

// highPassAlpha returns alpha1 = (cos(a) + sin(a) - 1) / cos(a) for the
// clamped angle a = k*2*pi/length.
func highPassAlpha(length, k float64) float64 {
	angle := clampAngle(k * 2 * math.Pi / length)
	c := math.Cos(angle)
	return (c + math.Sin(angle) - 1) / c
}
