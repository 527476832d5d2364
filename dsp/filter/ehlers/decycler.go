package ehlers

import "github.com/cwbudde/algo-cycle/dsp/filter/biquad"

// Decycler is the complement of a 1-pole high-pass: it subtracts the cycle
// content above the cutoff length from the input, leaving the trend with
// very little lag.
type Decycler struct {
	hp *HighPass
}

// NewDecycler returns a decycler with the given cutoff length in bars.
func NewDecycler(length float64) (*Decycler, error) {
	hp, err := NewHighPass(length, OnePole)
	if err != nil {
		return nil, err
	}
	return &Decycler{hp: hp}, nil
}

// Length returns the cutoff length in bars.
func (d *Decycler) Length() float64 { return d.hp.Length() }

// Order returns 0: the decycler passes the first bar through.
func (d *Decycler) Order() int { return 0 }

// ProcessSample filters one bar.
func (d *Decycler) ProcessSample(x float64) float64 {
	return x - d.hp.ProcessSample(x)
}

// Reset clears the recursive state.
func (d *Decycler) Reset() { d.hp.Reset() }

// Coefficients returns the transfer function 1 - H_hp.
func (d *Decycler) Coefficients() biquad.Coefficients {
	h := d.hp.Coefficients()
	return biquad.Coefficients{B0: 1 - h.B0, B1: h.A1 - h.B1, A1: h.A1}
}
