package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave with the given cycle period in bars.
func Sine(period, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi / period
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// PricedSine generates a sine wave riding on a constant price level, the
// way a ranging market looks to a cycle estimator.
func PricedSine(period, amplitude, level float64, length int) []float64 {
	out := Sine(period, amplitude, length)
	for i := range out {
		out[i] += level
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// RandomWalk generates a seeded random-walk price path starting at start.
func RandomWalk(seed int64, start, step float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	price := start
	for i := range out {
		price += (rng.Float64()*2 - 1) * step
		out[i] = price
	}
	return out
}

// Chirp generates a unit sine whose period moves linearly from startPeriod
// to endPeriod over the series.
func Chirp(startPeriod, endPeriod float64, length int) []float64 {
	out := make([]float64, length)
	phase := 0.0
	for i := range out {
		frac := 0.0
		if length > 1 {
			frac = float64(i) / float64(length-1)
		}
		period := startPeriod + (endPeriod-startPeriod)*frac
		out[i] = math.Sin(phase)
		phase += 2 * math.Pi / period
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
