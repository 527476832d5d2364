package cycle

import "math"

// DualDifferentiator estimates the period from the ratio of the analytic
// signal's angular rate to its squared amplitude, den / num with
// num = I^2 + Q^2 and den = Q*dI - I*dQ. Both terms are smoothed. The ratio
// is the sine of the phase advance per bar, so the raw period is
// 2π/asin(den/num); 2π·num/den is its small-angle form and reads long for
// short cycles.
type DualDifferentiator struct {
	quadratureBase
	num, den float64
	raw      float64
}

// NewDualDifferentiator returns a dual-differentiator estimator. Default band
// is 6..50 bars.
func NewDualDifferentiator(opts ...Option) (*DualDifferentiator, error) {
	cfg, err := newConfig(defaultQuadratureBand(), opts)
	if err != nil {
		return nil, err
	}

	base, err := newQuadratureBase(cfg)
	if err != nil {
		return nil, err
	}

	return &DualDifferentiator{quadratureBase: base, raw: cfg.band.Min}, nil
}

// Next consumes one bar and returns the smoothed period.
func (d *DualDifferentiator) Next(x float64) float64 {
	cur, prev := d.advance(x)

	iDot := cur.InPhase - prev.InPhase
	qDot := cur.Quadrature - prev.Quadrature
	num := cur.InPhase*cur.InPhase + cur.Quadrature*cur.Quadrature
	den := cur.Quadrature*iDot - cur.InPhase*qDot

	d.num = 0.2*num + 0.8*d.num
	d.den = 0.2*den + 0.8*d.den

	// A non-positive rate means the phase is not advancing; hold.
	if d.den > 0 && d.num > 0 {
		d.raw = d.limitRate(2 * math.Pi / math.Asin(math.Min(d.den/d.num, 1)))
	}

	return d.finish(d.raw)
}

// Reset restores the construction state.
func (d *DualDifferentiator) Reset() {
	d.reset()
	d.num, d.den = 0, 0
	d.raw = d.band.Min
}

// Kind returns KindDualDifferentiator.
func (d *DualDifferentiator) Kind() Kind { return KindDualDifferentiator }
