package biquad

import "math/cmplx"

// Poles returns the roots of 1 + A1*z^-1 + A2*z^-2. A first-order section
// reports a second pole at the origin.
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 + B1*z^-1 + B2*z^-2.
func (c Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleRadius returns the largest pole magnitude. Values close to 1 mean long
// ringing and a slow warm-up.
func (c Coefficients) PoleRadius() float64 {
	p := c.Poles()
	return max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// quadraticRoots solves a + b*u + c*u^2 = 0 in u = z^-1 and returns the
// roots as z values.
func quadraticRoots(a, b, c float64) [2]complex128 {
	// Multiplying by z^2 gives a*z^2 + b*z + c.
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	disc := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(complex(-b, 0) + disc) / den,
		(complex(-b, 0) - disc) / den,
	}
}
