package quadrature

import (
	"fmt"
	"math"
)

// DefaultDecay is the per-bar peak decay of the PeakNormalized generator.
const DefaultDecay = 0.991

// PeakGenerator normalises the input by a slowly decaying peak and takes the
// normalised one-bar difference, again peak-normalised, as quadrature.
type PeakGenerator struct {
	decay float64
	peak  float64
	qpeak float64
	real1 float64
}

// NewPeakNormalized returns a peak-normalised quadrature generator.
func NewPeakNormalized(decay float64) (*PeakGenerator, error) {
	if math.IsNaN(decay) || decay <= 0 || decay >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDecay, decay)
	}
	return &PeakGenerator{decay: decay}, nil
}

// Next consumes one bar. Outputs lie in [-1, 1]; a zero peak yields zero.
func (g *PeakGenerator) Next(x float64) Pair {
	g.peak *= g.decay
	if a := math.Abs(x); a > g.peak {
		g.peak = a
	}

	var re float64
	if g.peak != 0 {
		re = x / g.peak
	}

	q := re - g.real1
	g.real1 = re

	g.qpeak *= g.decay
	if a := math.Abs(q); a > g.qpeak {
		g.qpeak = a
	}

	var im float64
	if g.qpeak != 0 {
		im = q / g.qpeak
	}

	return Pair{InPhase: re, Quadrature: im}
}

// Reset clears the peak trackers.
func (g *PeakGenerator) Reset() {
	g.peak = 0
	g.qpeak = 0
	g.real1 = 0
}

// Variant returns PeakNormalized.
func (g *PeakGenerator) Variant() Variant { return PeakNormalized }

// Decay returns the per-bar peak decay.
func (g *PeakGenerator) Decay() float64 { return g.decay }
