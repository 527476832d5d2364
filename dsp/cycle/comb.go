package cycle

import (
	"github.com/cwbudde/algo-cycle/dsp/delay"
	"github.com/cwbudde/algo-cycle/dsp/filter/ehlers"
)

// Comb runs one band-pass filter per candidate period and measures the
// mean-square output over one cycle of each.
//
// Cost per bar is O(sum of candidate periods).
type Comb struct {
	spectralBase
	filters []*ehlers.BandPass
	outputs []*delay.Line
}

// NewComb returns a comb filter estimator. Default band is 10..48 bars with
// bandwidth 0.1.
func NewComb(opts ...Option) (*Comb, error) {
	cfg, err := newConfig(SpectralBand(), opts)
	if err != nil {
		return nil, err
	}

	base := newSpectralBase(cfg)
	c := &Comb{
		spectralBase: base,
		filters:      make([]*ehlers.BandPass, len(base.candidates)),
		outputs:      make([]*delay.Line, len(base.candidates)),
	}

	for j, p := range base.candidates {
		bp, err := ehlers.NewBandPass(p, cfg.bandwidth)
		if err != nil {
			return nil, err
		}
		c.filters[j] = bp
		c.outputs[j] = delay.MustNew(int(p))
	}

	return c, nil
}

// Next consumes one bar and returns the smoothed period.
func (c *Comb) Next(x float64) float64 {
	x = sanitize(x)

	for j, f := range c.filters {
		out := c.outputs[j]
		out.Write(f.ProcessSample(x))

		sum := 0.0
		for i := range out.Len() {
			v := out.Read(i)
			sum += v * v
		}
		ms := sum / c.candidates[j]

		c.power[j] = 0.2*ms + 0.8*c.power[j]
	}

	return c.finish()
}

// Bandwidth returns the fractional bandwidth of the filters.
func (c *Comb) Bandwidth() float64 { return c.filters[0].Bandwidth() }

// Reset restores the construction state.
func (c *Comb) Reset() {
	c.reset()
	for j, f := range c.filters {
		f.Reset()
		c.outputs[j].Reset()
	}
}

// Kind returns KindComb.
func (c *Comb) Kind() Kind { return KindComb }
