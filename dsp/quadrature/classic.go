package quadrature

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-cycle/dsp/delay"
)

// classicTaps are applied to x[n-2k] for k = 0..11.
var classicTaps = [...]float64{
	0.091, 0.111, 0.143, 0.2, 0.333, 1,
	-1, -0.333, -0.2, -0.143, -0.111, -0.091,
}

const (
	classicGain   = 1.865
	classicCentre = 11
	classicSpan   = 2*(len(classicTaps)-1) + 1
)

// ClassicGenerator is the FIR Hilbert transformer. The in-phase output is
// the input delayed to the filter centre so both outputs share the same
// group delay of 11 bars.
type ClassicGenerator struct {
	line *delay.Line
}

// NewClassic returns a FIR quadrature generator.
func NewClassic() *ClassicGenerator {
	return &ClassicGenerator{line: delay.MustNew(classicSpan)}
}

// Next consumes one bar.
func (g *ClassicGenerator) Next(x float64) Pair {
	g.line.Write(x)

	var q float64
	for k, tap := range classicTaps {
		q += tap * g.line.Read(2*k)
	}

	return Pair{
		InPhase:    g.line.Read(classicCentre),
		Quadrature: q / classicGain,
	}
}

// Reset clears the input history.
func (g *ClassicGenerator) Reset() { g.line.Reset() }

// Variant returns Classic.
func (g *ClassicGenerator) Variant() Variant { return Classic }

// Delay returns the group delay of both outputs in bars.
func (g *ClassicGenerator) Delay() int { return classicCentre }

// Response returns the quadrature output relative to the in-phase output
// for a steady cycle of the given period in bars. The real part is zero up
// to rounding; the imaginary part is the quadrature gain.
func (g *ClassicGenerator) Response(period float64) complex128 {
	w := 2 * math.Pi / period

	var h complex128
	for k, tap := range classicTaps {
		h += complex(tap, 0) * cmplx.Exp(complex(0, -w*float64(2*k)))
	}
	h /= complex(classicGain, 0)

	return h / cmplx.Exp(complex(0, -w*classicCentre))
}

// Gain returns the quadrature gain for a steady cycle of the given period,
// the imaginary part of Response.
func (g *ClassicGenerator) Gain(period float64) float64 {
	return imag(g.Response(period))
}
