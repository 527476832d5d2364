package cycle

import (
	"math"

	"github.com/cwbudde/algo-cycle/dsp/delay"
	"github.com/cwbudde/algo-cycle/dsp/spectrum"
	"github.com/cwbudde/algo-cycle/dsp/window"
)

const (
	// firstLag is the shortest correlation lag used by the periodogram. Lags
	// below it are dominated by residual smoothing.
	firstLag = 3
	// lagSpan is the longest lag as a multiple of the band maximum.
	lagSpan = 3
)

// Autocorrelation is the autocorrelation periodogram: Pearson correlation of
// the recent bars against lagged copies, transformed into power per
// candidate period. Lags run to three times the band maximum and are
// Hann-tapered before the transform.
//
// Cost per bar is O(maxLag*averageLength + candidates*maxLag).
type Autocorrelation struct {
	spectralBase
	average int
	maxLag  int
	history *delay.Line
	corr    []float64
	cos     [][]float64
	sin     [][]float64
	re, im  []float64
	sq      []float64
}

// NewAutocorrelation returns an autocorrelation periodogram estimator.
// Default band is 10..48 bars.
func NewAutocorrelation(opts ...Option) (*Autocorrelation, error) {
	cfg, err := newConfig(SpectralBand(), opts)
	if err != nil {
		return nil, err
	}

	base := newSpectralBase(cfg)
	_, hi := cfg.band.IntBounds()
	maxLag := lagSpan * hi

	longest := cfg.averageLength
	if longest == 0 {
		longest = maxLag
	}

	a := &Autocorrelation{
		spectralBase: base,
		average:      cfg.averageLength,
		maxLag:       maxLag,
		history:      delay.MustNew(maxLag + longest),
		corr:         make([]float64, maxLag+1),
		cos:          make([][]float64, len(base.candidates)),
		sin:          make([][]float64, len(base.candidates)),
		re:           make([]float64, len(base.candidates)),
		im:           make([]float64, len(base.candidates)),
		sq:           make([]float64, len(base.candidates)),
	}

	taper := window.Generate(window.TypeHann, maxLag-firstLag+1)
	for j, p := range base.candidates {
		a.cos[j] = make([]float64, maxLag+1)
		a.sin[j] = make([]float64, maxLag+1)
		for n := firstLag; n <= maxLag; n++ {
			g := taper[n-firstLag]
			a.cos[j][n] = g * math.Cos(2*math.Pi*float64(n)/p)
			a.sin[j][n] = g * math.Sin(2*math.Pi*float64(n)/p)
		}
	}

	return a, nil
}

// Next consumes one bar and returns the smoothed period.
func (a *Autocorrelation) Next(x float64) float64 {
	a.history.Write(sanitize(x))

	for lag := range a.corr {
		a.corr[lag] = a.correlate(lag)
	}

	for j := range a.candidates {
		cs, sn := 0.0, 0.0
		for n := firstLag; n <= a.maxLag; n++ {
			cs += a.corr[n] * a.cos[j][n]
			sn += a.corr[n] * a.sin[j][n]
		}
		a.re[j], a.im[j] = cs, sn
	}

	spectrum.PowerFromParts(a.sq, a.re, a.im)
	for j, sq := range a.sq {
		a.power[j] = 0.2*sq*sq + 0.8*a.power[j]
	}

	return a.finish()
}

// correlate returns the Pearson correlation between the newest bars and the
// bars lag earlier, or 0 when either side has no variance.
func (a *Autocorrelation) correlate(lag int) float64 {
	m := a.average
	if m == 0 {
		m = max(lag, 2)
	}

	var sx, sy, sxx, syy, sxy float64
	for c := range m {
		x := a.history.Read(c)
		y := a.history.Read(lag + c)
		sx += x
		sy += y
		sxx += x * x
		syy += y * y
		sxy += x * y
	}

	n := float64(m)
	d := (n*sxx - sx*sx) * (n*syy - sy*sy)
	if d <= 0 {
		return 0
	}
	return (n*sxy - sx*sy) / math.Sqrt(d)
}

// Correlation returns a copy of the last correlation per lag, 0..maxLag.
func (a *Autocorrelation) Correlation() []float64 {
	return append([]float64(nil), a.corr...)
}

// Reset restores the construction state.
func (a *Autocorrelation) Reset() {
	a.reset()
	a.history.Reset()
	for i := range a.corr {
		a.corr[i] = 0
	}
}

// Kind returns KindAutocorrelation.
func (a *Autocorrelation) Kind() Kind { return KindAutocorrelation }
