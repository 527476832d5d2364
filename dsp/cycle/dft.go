package cycle

import (
	"fmt"

	"github.com/cwbudde/algo-cycle/dsp/delay"
	"github.com/cwbudde/algo-cycle/dsp/spectrum"
	"github.com/cwbudde/algo-cycle/dsp/window"
)

// DFT evaluates the power of each candidate period over a trailing window
// of bars with a Goertzel bank.
//
// Cost per bar is O(candidates*window).
type DFT struct {
	spectralBase
	history *delay.Line
	block   []float64
	taper   []float64
	bank    *spectrum.Bank
}

// NewDFT returns a DFT estimator. Default band is 10..48 bars and the window
// is four times the longest in-band candidate.
func NewDFT(opts ...Option) (*DFT, error) {
	cfg, err := newConfig(SpectralBand(), opts)
	if err != nil {
		return nil, err
	}

	base := newSpectralBase(cfg)
	_, hi := cfg.band.IntBounds()

	length := cfg.windowLength
	if length == 0 {
		length = 4 * hi
	}
	if length < hi {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidWindow, length, hi)
	}

	bank, err := spectrum.NewBank(base.candidates)
	if err != nil {
		return nil, err
	}

	d := &DFT{
		spectralBase: base,
		history:      delay.MustNew(length),
		block:        make([]float64, length),
		bank:         bank,
	}
	if cfg.taper != window.TypeRectangular {
		d.taper = window.Generate(cfg.taper, length)
	}

	return d, nil
}

// Next consumes one bar and returns the smoothed period.
func (d *DFT) Next(x float64) float64 {
	d.history.Write(sanitize(x))

	n := len(d.block)
	for i := range d.block {
		d.block[i] = d.history.Read(n - 1 - i)
	}
	if d.taper != nil {
		// Lengths match by construction.
		_ = window.ApplyCoefficientsInPlace(d.block, d.taper)
	}

	d.power = d.bank.Analyze(d.power, d.block)

	return d.finish()
}

// WindowLength returns the analysis window in bars.
func (d *DFT) WindowLength() int { return len(d.block) }

// Reset restores the construction state.
func (d *DFT) Reset() {
	d.reset()
	d.history.Reset()
}

// Kind returns KindDFT.
func (d *DFT) Kind() Kind { return KindDFT }
