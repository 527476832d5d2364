package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
//
// The sign convention matches the difference equation
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Passthrough returns the identity section.
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// DCGain returns H(1), the steady-state response to a constant input.
// It returns 0 when the denominator vanishes at DC.
func (c Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return 0
	}
	return (c.B0 + c.B1 + c.B2) / den
}

// NyquistGain returns H(-1), the response at the two-bar period.
func (c Coefficients) NyquistGain() float64 {
	den := 1 - c.A1 + c.A2
	if den == 0 {
		return 0
	}
	return (c.B0 - c.B1 + c.B2) / den
}

// Stable reports whether both poles lie strictly inside the unit circle,
// using the second-order stability triangle.
func (c Coefficients) Stable() bool {
	return c.A2 < 1 && c.A2 > -1 && c.A1 < 1+c.A2 && -c.A1 < 1+c.A2
}
