package cycle

import "math"

// Homodyne estimates the period from the phase rotation between consecutive
// analytic-signal bars, obtained by multiplying each bar with the complex
// conjugate of the previous one.
//
// The raw period is the published form 2π/|atan(im/re)|, not 2π/|im/re|.
type Homodyne struct {
	quadratureBase
	re, im float64
}

// NewHomodyne returns a homodyne discriminator. Default band is 6..50 bars.
func NewHomodyne(opts ...Option) (*Homodyne, error) {
	cfg, err := newConfig(defaultQuadratureBand(), opts)
	if err != nil {
		return nil, err
	}

	base, err := newQuadratureBase(cfg)
	if err != nil {
		return nil, err
	}

	return &Homodyne{quadratureBase: base}, nil
}

// Next consumes one bar and returns the smoothed period.
func (h *Homodyne) Next(x float64) float64 {
	cur, prev := h.advance(x)

	re := cur.InPhase*prev.InPhase + cur.Quadrature*prev.Quadrature
	im := prev.InPhase*cur.Quadrature - cur.InPhase*prev.Quadrature
	h.re = 0.2*re + 0.8*h.re
	h.im = 0.2*im + 0.8*h.im

	raw := 0.0
	if h.re != 0 && h.im != 0 {
		raw = h.limitRate(2 * math.Pi / math.Abs(math.Atan(h.im/h.re)))
	}

	return h.finish(raw)
}

// Reset restores the construction state.
func (h *Homodyne) Reset() {
	h.reset()
	h.re, h.im = 0, 0
}

// Kind returns KindHomodyne.
func (h *Homodyne) Kind() Kind { return KindHomodyne }
