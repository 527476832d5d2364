package biquad

// Chain is a cascade of sections, such as a roofing filter's high-pass
// section feeding its smoother.
type Chain struct {
	sections []Coefficients
}

// NewChain copies the sections into a cascade.
func NewChain(sections []Coefficients) *Chain {
	return &Chain{sections: append([]Coefficients(nil), sections...)}
}

// Sections returns a copy of the cascade's sections.
func (c *Chain) Sections() []Coefficients {
	return append([]Coefficients(nil), c.sections...)
}

// Order counts a section with a non-zero A2 or B2 as second order and one
// with only A1 or B1 as first order.
func (c *Chain) Order() int {
	order := 0
	for _, s := range c.sections {
		switch {
		case s.A2 != 0 || s.B2 != 0:
			order += 2
		case s.A1 != 0 || s.B1 != 0:
			order++
		}
	}
	return order
}

// Stable reports whether every section is stable.
func (c *Chain) Stable() bool {
	for _, s := range c.sections {
		if !s.Stable() {
			return false
		}
	}
	return true
}

// PoleRadius returns the largest pole magnitude over all sections.
func (c *Chain) PoleRadius() float64 {
	r := 0.0
	for _, s := range c.sections {
		r = max(r, s.PoleRadius())
	}
	return r
}
