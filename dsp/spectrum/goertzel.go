//nolint:funcorder
package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-cycle/dsp/core"
)

// ErrInvalidPeriod is returned for cycle periods shorter than two bars or not
// finite.
var ErrInvalidPeriod = errors.New("spectrum: period must be finite and >= 2")

// Goertzel evaluates one DFT term at a cycle period given in bars.
//
// The analyzer is stateful and accumulates information from each processed
// sample. Power() and Magnitude() evaluate the cycle component based on all
// samples processed since the last Reset().
//
// Spectral leakage occurs if the period does not fit an integer number of
// times into the processed block. Windowing the input before processing
// reduces leakage at the cost of a wider main lobe.
type Goertzel struct {
	period float64
	coeff  float64
	s0, s1 float64
}

// NewGoertzel creates an analyzer for the given period in bars.
func NewGoertzel(period float64) (*Goertzel, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	g := &Goertzel{period: period}
	g.updateCoeff()

	return g, nil
}

func validatePeriod(period float64) error {
	if math.IsNaN(period) || math.IsInf(period, 0) || period < 2 {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}
	return nil
}

func (g *Goertzel) updateCoeff() {
	g.coeff = 2 * math.Cos(2*math.Pi/g.period)
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
}

// ProcessBlock updates the internal state with a block of samples, oldest
// first.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the cycle component. It equals
// |sum x[n] * exp(-j*2*pi*n/period)|^2 over the processed samples.
func (g *Goertzel) Power() float64 {
	p := g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
	if p < 0 {
		return 0
	}
	return p
}

// Magnitude returns the magnitude of the cycle component.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(g.Power())
}

// PowerDB returns the power in decibels (dB) with a safe floor at -300 dB.
func (g *Goertzel) PowerDB() float64 {
	p := g.Power()
	if p <= 1e-30 {
		return -300
	}

	return core.LinearPowerToDB(p)
}

// SetPeriod retargets the analyzer. The accumulated state is kept.
func (g *Goertzel) SetPeriod(period float64) error {
	if err := validatePeriod(period); err != nil {
		return err
	}

	g.period = period
	g.updateCoeff()

	return nil
}

// Period returns the current target period in bars.
func (g *Goertzel) Period() float64 { return g.period }

// AnalyzeBlock computes the Goertzel power for a single period in one shot.
func AnalyzeBlock(input []float64, period float64) (float64, error) {
	g, err := NewGoertzel(period)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Power(), nil
}

// Bank evaluates a fixed set of periods over the same input block.
type Bank struct {
	periods   []float64
	analyzers []*Goertzel
}

// NewBank creates one analyzer per period.
func NewBank(periods []float64) (*Bank, error) {
	analyzers := make([]*Goertzel, len(periods))
	for i, p := range periods {
		g, err := NewGoertzel(p)
		if err != nil {
			return nil, err
		}

		analyzers[i] = g
	}

	return &Bank{
		periods:   append([]float64(nil), periods...),
		analyzers: analyzers,
	}, nil
}

// Periods returns the analysed periods.
func (b *Bank) Periods() []float64 { return b.periods }

// Analyze resets every analyzer, feeds block (oldest first) and writes the
// powers into dst, which is grown when too short.
func (b *Bank) Analyze(dst, block []float64) []float64 {
	if cap(dst) < len(b.analyzers) {
		dst = make([]float64, len(b.analyzers))
	}
	dst = dst[:len(b.analyzers)]

	for i, g := range b.analyzers {
		g.Reset()
		g.ProcessBlock(block)
		dst[i] = g.Power()
	}

	return dst
}
