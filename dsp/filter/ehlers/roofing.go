package ehlers

import (
	"fmt"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/filter/biquad"
)

// Roofing passes the band between two cycle lengths: a high-pass at the
// upper length removes trend, and a super smoother at the lower length
// removes aliasing noise.
type Roofing struct {
	hp    *HighPass
	ss    *SuperSmoother
	upper float64
	lower float64
	last  float64
}

type roofingConfig struct {
	poles   Poles
	variant SmootherVariant
}

// RoofingOption configures a Roofing filter.
type RoofingOption func(*roofingConfig)

// WithHighPassPoles selects the high-pass stage order. Default is TwoPole.
func WithHighPassPoles(p Poles) RoofingOption {
	return func(cfg *roofingConfig) { cfg.poles = p }
}

// WithSmootherVariant selects the smoother numerator. Default is
// SmootherDirect.
func WithSmootherVariant(v SmootherVariant) RoofingOption {
	return func(cfg *roofingConfig) { cfg.variant = v }
}

// NewRoofing returns a roofing filter that passes cycles between lower and
// upper bars.
func NewRoofing(upper, lower float64, opts ...RoofingOption) (*Roofing, error) {
	cfg := roofingConfig{poles: TwoPole, variant: SmootherDirect}
	for _, o := range opts {
		o(&cfg)
	}

	if err := validateLength(lower); err != nil {
		return nil, err
	}
	if err := validateLength(upper); err != nil {
		return nil, err
	}
	if upper <= lower {
		return nil, fmt.Errorf("%w: upper %v must exceed lower %v", ErrInvalidLength, upper, lower)
	}

	hp, err := NewHighPass(upper, cfg.poles)
	if err != nil {
		return nil, err
	}
	ss, err := NewSuperSmoother(lower, cfg.variant)
	if err != nil {
		return nil, err
	}

	return &Roofing{hp: hp, ss: ss, upper: upper, lower: lower}, nil
}

// Upper returns the high-pass cutoff length.
func (r *Roofing) Upper() float64 { return r.upper }

// Lower returns the smoother cutoff length.
func (r *Roofing) Lower() float64 { return r.lower }

// Order returns 2. Both stages warm up over the same first bars.
func (r *Roofing) Order() int { return 2 }

// ProcessSample filters one bar. A NaN or infinite bar repeats the last
// finite input, or 0 before the first one.
func (r *Roofing) ProcessSample(x float64) float64 {
	if core.Finite(x) {
		r.last = x
	} else {
		x = r.last
	}
	return r.ss.ProcessSample(r.hp.ProcessSample(x))
}

// Reset clears both stages.
func (r *Roofing) Reset() {
	r.hp.Reset()
	r.ss.Reset()
	r.last = 0
}

// Response returns the cascade of the high-pass and smoother sections.
func (r *Roofing) Response() *biquad.Chain {
	return biquad.NewChain([]biquad.Coefficients{
		r.hp.Coefficients(),
		r.ss.Coefficients(),
	})
}
