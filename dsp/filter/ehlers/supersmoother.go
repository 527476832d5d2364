package ehlers

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cycle/dsp/filter/biquad"
)

// SmootherVariant selects between the two published super smoother forms.
// They share poles and unity DC gain but differ in their numerator.
type SmootherVariant int

const (
	// SmootherDirect feeds the current input only: y = c1*x + c2*y1 + c3*y2.
	SmootherDirect SmootherVariant = iota
	// SmootherAveraged feeds the two-bar input average:
	// y = c1*(x+x1)/2 + c2*y1 + c3*y2. The extra zero at the two-bar period
	// removes Nyquist noise completely.
	SmootherAveraged
)

// String returns the variant name.
func (v SmootherVariant) String() string {
	switch v {
	case SmootherDirect:
		return "direct"
	case SmootherAveraged:
		return "averaged"
	default:
		return fmt.Sprintf("SmootherVariant(%d)", int(v))
	}
}

// SuperSmoother is the 2-pole low-pass filter with poles at radius
// exp(-1.414*pi/length).
type SuperSmoother struct {
	length     float64
	variant    SmootherVariant
	c1, c2, c3 float64
	state      State
}

// NewSuperSmoother returns a 2-pole super smoother with the given cutoff
// length in bars.
func NewSuperSmoother(length float64, variant SmootherVariant) (*SuperSmoother, error) {
	if variant != SmootherDirect && variant != SmootherAveraged {
		return nil, fmt.Errorf("ehlers: unknown smoother variant %d", int(variant))
	}

	s := &SuperSmoother{variant: variant}
	if err := s.SetLength(length); err != nil {
		return nil, err
	}

	return s, nil
}

// SuperSmootherCoefficients returns (c1, c2, c3) for a cutoff length:
// a = exp(-1.414*pi/length), c2 = 2a*cos(1.414*pi/length), c3 = -a^2 and
// c1 = 1 - c2 - c3.
func SuperSmootherCoefficients(length float64) (c1, c2, c3 float64) {
	arg := sqrt2Approx * math.Pi / length
	a := math.Exp(-arg)
	b := 2 * a * math.Cos(arg)
	c2 = b
	c3 = -a * a
	c1 = 1 - c2 - c3
	return c1, c2, c3
}

// SetLength recomputes the coefficients for a new cutoff length.
func (s *SuperSmoother) SetLength(length float64) error {
	if err := validateLength(length); err != nil {
		return err
	}

	s.length = length
	s.c1, s.c2, s.c3 = SuperSmootherCoefficients(length)

	return nil
}

// Length returns the cutoff length in bars.
func (s *SuperSmoother) Length() float64 { return s.length }

// Variant returns the numerator form in use.
func (s *SuperSmoother) Variant() SmootherVariant { return s.variant }

// Order returns 2.
func (s *SuperSmoother) Order() int { return 2 }

// ProcessSample filters one bar.
func (s *SuperSmoother) ProcessSample(x float64) float64 {
	st := &s.state

	var y float64
	if st.warm(2) {
		in := x
		if s.variant == SmootherAveraged {
			in = (x + st.x[0]) / 2
		}
		y = s.c1*in + s.c2*st.y[0] + s.c3*st.y[1]
	}

	st.push(x, y)

	return y
}

// Reset clears the recursive state.
func (s *SuperSmoother) Reset() { s.state.reset() }

// State returns a copy of the recursive state.
func (s *SuperSmoother) State() State { return s.state }

// SetState restores a state previously returned by State.
func (s *SuperSmoother) SetState(st State) { s.state = st }

// Coefficients returns the transfer function of the filter.
func (s *SuperSmoother) Coefficients() biquad.Coefficients {
	if s.variant == SmootherAveraged {
		return biquad.Coefficients{B0: s.c1 / 2, B1: s.c1 / 2, A1: -s.c2, A2: -s.c3}
	}
	return biquad.Coefficients{B0: s.c1, A1: -s.c2, A2: -s.c3}
}

// SuperSmoother3 is the 3-pole super smoother. It rolls off faster than the
// 2-pole form at the cost of one more bar of warm-up and more lag.
type SuperSmoother3 struct {
	length         float64
	b, c           float64
	d1, d2, d3, d4 float64
	state          State
}

// NewSuperSmoother3 returns a 3-pole super smoother with the given cutoff
// length in bars.
func NewSuperSmoother3(length float64) (*SuperSmoother3, error) {
	if err := validateLength(length); err != nil {
		return nil, err
	}

	a := math.Exp(-math.Pi / length)
	b := 2 * a * math.Cos(1.738*math.Pi/length)
	c := a * a

	s := &SuperSmoother3{length: length, b: b, c: c}
	s.d2 = b + c
	s.d3 = -(c + b*c)
	s.d4 = c * c
	s.d1 = 1 - s.d2 - s.d3 - s.d4

	return s, nil
}

// Length returns the cutoff length in bars.
func (s *SuperSmoother3) Length() float64 { return s.length }

// Order returns 3.
func (s *SuperSmoother3) Order() int { return 3 }

// ProcessSample filters one bar.
func (s *SuperSmoother3) ProcessSample(x float64) float64 {
	st := &s.state

	var y float64
	if st.warm(3) {
		y = s.d1*x + s.d2*st.y[0] + s.d3*st.y[1] + s.d4*st.y[2]
	}

	st.push(x, y)

	return y
}

// Reset clears the recursive state.
func (s *SuperSmoother3) Reset() { s.state.reset() }

// State returns a copy of the recursive state.
func (s *SuperSmoother3) State() State { return s.state }

// Response returns the filter factored into a resonant 2-pole section and a
// real 1-pole section.
func (s *SuperSmoother3) Response() *biquad.Chain {
	return biquad.NewChain([]biquad.Coefficients{
		{B0: s.d1, A1: -s.b, A2: s.c},
		{B0: 1, A1: -s.c},
	})
}
