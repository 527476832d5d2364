package cycle

import (
	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/quadrature"
)

const (
	// Raw quadrature periods may move at most this far from the previous
	// smoothed period in one bar.
	rateLow  = 0.67
	rateHigh = 1.5

	// minGain is the smallest quadrature gain that is corrected for.
	minGain = 0.1
)

// quadratureBase carries what the quadrature estimators share: the
// generator, the previous pair and the period conditioning. A generator with
// a period-dependent gain has its quadrature output rescaled at the last
// reported period, so I and Q of a steady cycle have equal amplitude.
type quadratureBase struct {
	band   core.Band
	gen    quadrature.Generator
	tuned  quadrature.Tuned
	smooth periodSmoother
	last   quadrature.Pair
	period float64

	gainPeriod float64
	gain       float64
}

func newQuadratureBase(cfg config) (quadratureBase, error) {
	gen, err := quadrature.New(cfg.variant)
	if err != nil {
		return quadratureBase{}, err
	}

	tuned, _ := gen.(quadrature.Tuned)

	return quadratureBase{
		band:   cfg.band,
		gen:    gen,
		tuned:  tuned,
		smooth: newPeriodSmoother(cfg.band, cfg.smoothLength),
		period: cfg.band.Min,
	}, nil
}

// advance produces the next pair and returns it with the previous one.
func (q *quadratureBase) advance(x float64) (cur, prev quadrature.Pair) {
	prev = q.last
	cur = q.gen.Next(sanitize(x))
	if g := q.gainAt(q.period); g > minGain {
		cur.Quadrature /= g
	}
	q.last = cur
	return cur, prev
}

// gainAt returns the generator's quadrature gain at period, or 0 for
// generators without one. The last value is cached.
func (q *quadratureBase) gainAt(period float64) float64 {
	if q.tuned == nil {
		return 0
	}
	if period != q.gainPeriod {
		q.gainPeriod, q.gain = period, q.tuned.Gain(period)
	}
	return q.gain
}

func (q *quadratureBase) limitRate(raw float64) float64 {
	return core.Clamp(raw, rateLow*q.period, rateHigh*q.period)
}

func (q *quadratureBase) finish(raw float64) float64 {
	q.period = q.smooth.next(raw)
	return q.period
}

// Period returns the last reported period.
func (q *quadratureBase) Period() float64 { return q.period }

// Pair returns the analytic signal of the last bar, gain-corrected.
func (q *quadratureBase) Pair() quadrature.Pair { return q.last }

// Quadrature returns the generator variant in use.
func (q *quadratureBase) Quadrature() quadrature.Variant { return q.gen.Variant() }

func (q *quadratureBase) reset() {
	q.gen.Reset()
	q.smooth.reset()
	q.last = quadrature.Pair{}
	q.period = q.band.Min
	q.gainPeriod, q.gain = 0, 0
}
