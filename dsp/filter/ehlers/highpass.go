package ehlers

import (
	"fmt"

	"github.com/cwbudde/algo-cycle/dsp/filter/biquad"
)

// Poles selects the order of a high-pass filter.
type Poles int

const (
	// OnePole is the first-order high-pass with a 2*pi/length angle.
	OnePole Poles = 1
	// TwoPole is the second-order high-pass with a 0.707*2*pi/length angle.
	TwoPole Poles = 2
)

// HighPass removes trend components with periods longer than its length.
type HighPass struct {
	length float64
	poles  Poles
	alpha  float64
	state  State
}

// NewHighPass returns a high-pass filter with the given cutoff length in
// bars and pole count.
func NewHighPass(length float64, poles Poles) (*HighPass, error) {
	if poles != OnePole && poles != TwoPole {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPoles, poles)
	}

	h := &HighPass{poles: poles}
	if err := h.SetLength(length); err != nil {
		return nil, err
	}

	return h, nil
}

// SetLength recomputes the coefficients for a new cutoff length. The
// recursive state is kept.
func (h *HighPass) SetLength(length float64) error {
	if err := validateLength(length); err != nil {
		return err
	}

	k := 1.0
	if h.poles == TwoPole {
		k = 0.707
	}

	h.length = length
	h.alpha = highPassAlpha(length, k)

	return nil
}

// Length returns the cutoff length in bars.
func (h *HighPass) Length() float64 { return h.length }

// Alpha returns the alpha1 coefficient.
func (h *HighPass) Alpha() float64 { return h.alpha }

// Order returns the pole count.
func (h *HighPass) Order() int { return int(h.poles) }

// ProcessSample filters one bar.
func (h *HighPass) ProcessSample(x float64) float64 {
	s := &h.state

	var y float64
	if s.warm(h.Order()) {
		a := h.alpha
		if h.poles == OnePole {
			y = (1-a/2)*(x-s.x[0]) + (1-a)*s.y[0]
		} else {
			k := (1 - a/2) * (1 - a/2)
			y = k*(x-2*s.x[0]+s.x[1]) + 2*(1-a)*s.y[0] - (1-a)*(1-a)*s.y[1]
		}
	}

	s.push(x, y)

	return y
}

// Reset clears the recursive state.
func (h *HighPass) Reset() { h.state.reset() }

// State returns a copy of the recursive state.
func (h *HighPass) State() State { return h.state }

// SetState restores a state previously returned by State.
func (h *HighPass) SetState(st State) { h.state = st }

// Coefficients returns the transfer function of the filter.
func (h *HighPass) Coefficients() biquad.Coefficients {
	a := h.alpha
	if h.poles == OnePole {
		k := 1 - a/2
		return biquad.Coefficients{B0: k, B1: -k, A1: -(1 - a)}
	}

	k := (1 - a/2) * (1 - a/2)

	return biquad.Coefficients{
		B0: k,
		B1: -2 * k,
		B2: k,
		A1: -2 * (1 - a),
		A2: (1 - a) * (1 - a),
	}
}
