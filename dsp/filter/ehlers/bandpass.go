package ehlers

import (
	"math"

	"github.com/cwbudde/algo-cycle/dsp/filter/biquad"
)

// resonator holds the shared coefficients of the band-pass and band-stop
// filters: beta = cos(2*pi/length) and alpha = gamma - sqrt(gamma^2 - 1)
// with gamma = 1/cos(clamp(4*pi*bandwidth/length)).
type resonator struct {
	length    float64
	bandwidth float64
	alpha     float64
	beta      float64
	state     State
}

func (r *resonator) configure(length, bandwidth float64) error {
	if err := validateLength(length); err != nil {
		return err
	}
	if err := validateBandwidth(bandwidth); err != nil {
		return err
	}

	gamma := 1 / math.Cos(clampAngle(4*math.Pi*bandwidth/length))

	r.length = length
	r.bandwidth = bandwidth
	r.beta = math.Cos(2 * math.Pi / length)
	r.alpha = gamma - math.Sqrt(gamma*gamma-1)

	return nil
}

// BandPass is a 2-pole resonator centred on a cycle length.
type BandPass struct {
	resonator
}

// NewBandPass returns a band-pass filter centred on length bars with the
// given fractional bandwidth.
func NewBandPass(length, bandwidth float64) (*BandPass, error) {
	b := &BandPass{}
	if err := b.configure(length, bandwidth); err != nil {
		return nil, err
	}
	return b, nil
}

// SetLength retunes the centre length, keeping bandwidth and state.
func (b *BandPass) SetLength(length float64) error {
	return b.configure(length, b.bandwidth)
}

// Length returns the centre length in bars.
func (b *BandPass) Length() float64 { return b.length }

// Bandwidth returns the fractional bandwidth.
func (b *BandPass) Bandwidth() float64 { return b.bandwidth }

// Order returns 2.
func (b *BandPass) Order() int { return 2 }

// ProcessSample filters one bar.
func (b *BandPass) ProcessSample(x float64) float64 {
	s := &b.state

	var y float64
	if s.warm(2) {
		y = 0.5*(1-b.alpha)*(x-s.x[1]) + b.beta*(1+b.alpha)*s.y[0] - b.alpha*s.y[1]
	}

	s.push(x, y)

	return y
}

// Reset clears the recursive state.
func (b *BandPass) Reset() { b.state.reset() }

// State returns a copy of the recursive state.
func (b *BandPass) State() State { return b.state }

// Coefficients returns the transfer function of the filter.
func (b *BandPass) Coefficients() biquad.Coefficients {
	k := 0.5 * (1 - b.alpha)
	return biquad.Coefficients{
		B0: k,
		B2: -k,
		A1: -b.beta * (1 + b.alpha),
		A2: b.alpha,
	}
}

// BandStop is the notch complement of [BandPass].
type BandStop struct {
	resonator
}

// NewBandStop returns a band-stop filter centred on length bars with the
// given fractional bandwidth.
func NewBandStop(length, bandwidth float64) (*BandStop, error) {
	b := &BandStop{}
	if err := b.configure(length, bandwidth); err != nil {
		return nil, err
	}
	return b, nil
}

// Length returns the centre length in bars.
func (b *BandStop) Length() float64 { return b.length }

// Order returns 2.
func (b *BandStop) Order() int { return 2 }

// ProcessSample filters one bar.
func (b *BandStop) ProcessSample(x float64) float64 {
	s := &b.state

	var y float64
	if s.warm(2) {
		y = 0.5*(1+b.alpha)*(x-2*b.beta*s.x[0]+s.x[1]) + b.beta*(1+b.alpha)*s.y[0] - b.alpha*s.y[1]
	}

	s.push(x, y)

	return y
}

// Reset clears the recursive state.
func (b *BandStop) Reset() { b.state.reset() }

// Coefficients returns the transfer function of the filter.
func (b *BandStop) Coefficients() biquad.Coefficients {
	k := 0.5 * (1 + b.alpha)
	return biquad.Coefficients{
		B0: k,
		B1: -2 * k * b.beta,
		B2: k,
		A1: -b.beta * (1 + b.alpha),
		A2: b.alpha,
	}
}
