package cycle

import (
	"math"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/delay"
)

// PhaseAccumulation measures the period as the number of bars the
// instantaneous phase needs to advance a full 360 degrees.
type PhaseAccumulation struct {
	quadratureBase
	minDelta, maxDelta float64
	fractional         bool
	deltas             *delay.Line
	phase              float64
	raw                float64
}

// NewPhaseAccumulation returns a phase accumulation estimator. Default band
// is 6..50 bars.
func NewPhaseAccumulation(opts ...Option) (*PhaseAccumulation, error) {
	cfg, err := newConfig(defaultQuadratureBand(), opts)
	if err != nil {
		return nil, err
	}

	base, err := newQuadratureBase(cfg)
	if err != nil {
		return nil, err
	}

	return &PhaseAccumulation{
		quadratureBase: base,
		minDelta:       cfg.minDelta,
		maxDelta:       cfg.maxDelta,
		fractional:     cfg.fractional,
		deltas:         delay.MustNew(int(math.Ceil(cfg.band.Max)) + 1),
		raw:            cfg.band.Min,
	}, nil
}

// Next consumes one bar and returns the smoothed period.
func (p *PhaseAccumulation) Next(x float64) float64 {
	cur, _ := p.advance(x)

	phase := p.phase
	if cur.InPhase != 0 {
		phase = quadrantPhase(cur.InPhase, cur.Quadrature)
	}

	delta := p.phase - phase
	if p.phase < 90 && phase > 270 {
		delta = 360 + p.phase - phase
	}
	p.phase = phase
	p.deltas.Write(core.Clamp(delta, p.minDelta, p.maxDelta))

	if count, ok := p.count(); ok {
		p.raw = count
	}

	return p.finish(p.raw)
}

// count walks the deltas newest first until their sum exceeds 360 degrees.
func (p *PhaseAccumulation) count() (float64, bool) {
	total := 0.0
	for i := 0; i < p.deltas.Filled(); i++ {
		v := p.deltas.Read(i)
		if total+v > 360 {
			if !p.fractional {
				return float64(i), i > 0
			}
			return float64(i) + (360-total)/v, true
		}
		total += v
	}
	return 0, false
}

// Phase returns the last phase angle in degrees, in [0, 360).
func (p *PhaseAccumulation) Phase() float64 { return p.phase }

// Reset restores the construction state.
func (p *PhaseAccumulation) Reset() {
	p.reset()
	p.deltas.Reset()
	p.phase = 0
	p.raw = p.band.Min
}

// Kind returns KindPhaseAccumulation.
func (p *PhaseAccumulation) Kind() Kind { return KindPhaseAccumulation }

// quadrantPhase returns atan(|q/i|) in degrees, moved into the quadrant of
// (i, q).
func quadrantPhase(i, q float64) float64 {
	phase := core.Degrees(math.Atan(math.Abs(q / i)))
	switch {
	case i < 0 && q >= 0:
		phase = 180 - phase
	case i < 0 && q < 0:
		phase = 180 + phase
	case i > 0 && q < 0:
		phase = 360 - phase
	}
	if phase >= 360 {
		phase -= 360
	}
	return phase
}
