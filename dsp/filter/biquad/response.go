package biquad

import (
	"math"
	"math/cmplx"
)

// omega converts a cycle period in bars to radians per bar. A period of
// zero or less is treated as DC.
func omega(period float64) float64 {
	if period <= 0 || math.IsInf(period, 1) {
		return 0
	}
	return 2 * math.Pi / period
}

// Response computes the complex frequency response H(e^jw) of the section
// for a cycle of the given period in bars.
func (c Coefficients) Response(period float64) complex128 {
	return c.responseAt(omega(period))
}

// MagnitudeSquared returns |H|^2 at the given period using a closed-form
// expression.
func (c Coefficients) MagnitudeSquared(period float64) float64 {
	cw := 2 * math.Cos(omega(period))
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	if den == 0 {
		return 0
	}
	return num / den
}

// Gain returns |H| at the given period.
func (c Coefficients) Gain(period float64) float64 {
	m := c.MagnitudeSquared(period)
	if m <= 0 {
		return 0
	}
	return math.Sqrt(m)
}

// MagnitudeDB returns 10*log10(|H|^2) at the given period.
func (c Coefficients) MagnitudeDB(period float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(period))
}

// Phase returns the phase response in radians at the given period, in
// [-pi, pi].
func (c Coefficients) Phase(period float64) float64 {
	return cmplx.Phase(c.Response(period))
}

// GroupDelay estimates the group delay in bars at the given period by a
// central difference of the unwrapped phase.
func (c Coefficients) GroupDelay(period float64) float64 {
	w := omega(period)
	const dw = 1e-5
	lo := cmplx.Phase(c.responseAt(w - dw))
	hi := cmplx.Phase(c.responseAt(w + dw))
	d := hi - lo
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return -d / (2 * dw)
}

func (c Coefficients) responseAt(w float64) complex128 {
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))
	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// Response computes the complex frequency response of the full cascade
// as the product of individual section responses.
func (c *Chain) Response(period float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(period)
	}
	return h
}

// Gain returns the cascaded magnitude response at the given period.
func (c *Chain) Gain(period float64) float64 {
	return cmplx.Abs(c.Response(period))
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Chain) MagnitudeDB(period float64) float64 {
	return 20 * math.Log10(c.Gain(period))
}
