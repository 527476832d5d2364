package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/markcheno/go-talib"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-cycle/dsp/adaptive"
	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/cycle"
	"github.com/cwbudde/algo-cycle/dsp/filter/ehlers"
	"github.com/cwbudde/algo-cycle/dsp/quadrature"
	"github.com/cwbudde/algo-cycle/dsp/spectrum"
	"github.com/cwbudde/algo-cycle/series"
	"github.com/cwbudde/algo-cycle/stats/frequency"
	timestats "github.com/cwbudde/algo-cycle/stats/time"
)

// ErrNoData is returned when a run receives no bars.
var ErrNoData = errors.New("pipeline: no data")

// Pipeline holds the configuration of every stage. Stages are created fresh
// for each run.
type Pipeline struct {
	logger *zap.Logger
	price  series.PriceField

	roofUpper, roofLower float64

	kind      cycle.Kind
	variant   quadrature.Variant
	cycleOpts []cycle.Option

	indicator string
	fraction  float64
	capacity  int
	smoothing float64

	trigger        bool
	triggerLength  int
	triggerAverage talib.MaType
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPriceField selects the bar field analysed by Run. Default Close.
func WithPriceField(f series.PriceField) Option {
	return func(p *Pipeline) { p.price = f }
}

// WithRoofing sets the roofing filter cutoffs. Default 48 and 10 bars.
func WithRoofing(upper, lower float64) Option {
	return func(p *Pipeline) {
		p.roofUpper = upper
		p.roofLower = lower
	}
}

// WithEstimator selects the cycle estimator. Default homodyne.
func WithEstimator(kind cycle.Kind, opts ...cycle.Option) Option {
	return func(p *Pipeline) {
		p.kind = kind
		p.cycleOpts = append(p.cycleOpts, opts...)
	}
}

// WithQuadrature selects the quadrature variant for both the inPhase and
// quadrature columns and the quadrature estimators. Default Classic.
func WithQuadrature(v quadrature.Variant) Option {
	return func(p *Pipeline) {
		p.variant = v
		p.cycleOpts = append(p.cycleOpts, cycle.WithQuadrature(v))
	}
}

// WithIndicator selects an adaptive oscillator preset by name, or "" to
// skip the frame stage. Default "stochastic".
func WithIndicator(name string) Option {
	return func(p *Pipeline) { p.indicator = name }
}

// WithFrame overrides the preset's cycle fraction and history capacity.
// Zero keeps the current value.
func WithFrame(fraction float64, capacity int) Option {
	return func(p *Pipeline) {
		if fraction != 0 {
			p.fraction = fraction
		}
		if capacity != 0 {
			p.capacity = capacity
		}
	}
}

// WithSmoothing overrides the preset's output smoother length. Zero
// disables smoothing.
func WithSmoothing(length float64) Option {
	return func(p *Pipeline) { p.smoothing = length }
}

// WithTrigger adds a moving average of the oscillator as the trigger
// column.
func WithTrigger(length int, average talib.MaType) Option {
	return func(p *Pipeline) {
		p.trigger = true
		p.triggerLength = length
		p.triggerAverage = average
	}
}

// New validates the configuration by building every stage once.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		logger:    zap.NewNop(),
		roofUpper: 48,
		roofLower: 10,
		kind:      cycle.KindHomodyne,
		indicator: "stochastic",
		capacity:  adaptive.DefaultCapacity,
		smoothing: -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.trigger && p.triggerLength < 2 {
		return nil, fmt.Errorf("pipeline: trigger length must be >= 2: %d", p.triggerLength)
	}
	if p.trigger && p.indicator == "" {
		return nil, errors.New("pipeline: trigger needs an indicator")
	}

	if _, err := p.stages(); err != nil {
		return nil, err
	}

	p.logger.Debug("pipeline configured",
		zap.Stringer("price", p.price),
		zap.Float64("roofUpper", p.roofUpper),
		zap.Float64("roofLower", p.roofLower),
		zap.Stringer("estimator", p.kind),
		zap.Stringer("quadrature", p.variant),
		zap.String("indicator", p.indicator),
		zap.Bool("trigger", p.trigger),
	)

	return p, nil
}

// Indicator returns the oscillator column name, "" when disabled.
func (p *Pipeline) Indicator() string { return p.indicator }

// Estimator returns the configured estimator kind.
func (p *Pipeline) Estimator() cycle.Kind { return p.kind }

type stages struct {
	roof   *ehlers.Roofing
	gen    quadrature.Generator
	est    cycle.Estimator
	frame  *adaptive.Frame
	smooth *ehlers.SuperSmoother
}

func (p *Pipeline) stages() (*stages, error) {
	roof, err := ehlers.NewRoofing(p.roofUpper, p.roofLower)
	if err != nil {
		return nil, fmt.Errorf("pipeline: roofing: %w", err)
	}
	gen, err := quadrature.New(p.variant)
	if err != nil {
		return nil, fmt.Errorf("pipeline: quadrature: %w", err)
	}
	est, err := cycle.New(p.kind, p.cycleOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: estimator: %w", err)
	}

	st := &stages{roof: roof, gen: gen, est: est}
	if p.indicator == "" {
		return st, nil
	}

	preset, err := adaptive.LookupPreset(p.indicator)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	fraction := preset.Fraction
	if p.fraction != 0 {
		fraction = p.fraction
	}
	st.frame, err = adaptive.NewFrame(p.capacity, fraction, preset.Statistic)
	if err != nil {
		return nil, fmt.Errorf("pipeline: frame: %w", err)
	}

	smoothing := preset.SmoothLength
	if p.smoothing >= 0 {
		smoothing = p.smoothing
	}
	if smoothing > 0 {
		st.smooth, err = ehlers.NewSuperSmoother(smoothing, ehlers.SmootherDirect)
		if err != nil {
			return nil, fmt.Errorf("pipeline: smoothing: %w", err)
		}
	}

	return st, nil
}

// Result is the output of one run.
type Result struct {
	Set *series.Set
	// GlobalCycle is the dominant cycle of the whole filtered series from
	// an FFT periodogram, or 0 when the series is shorter than the band.
	GlobalCycle float64
	// Spectrum summarises that periodogram.
	Spectrum frequency.Stats
	// Filtered summarises the roofed series in the time domain.
	Filtered timestats.Stats
}

// Run extracts the configured price field from bars and analyses it.
func (p *Pipeline) Run(bars []series.Bar) (*Result, error) {
	return p.RunValues(p.price.Extract(bars).Values())
}

// RunValues analyses a price series given oldest first.
func (p *Pipeline) RunValues(prices []float64) (*Result, error) {
	if len(prices) == 0 {
		return nil, ErrNoData
	}

	st, err := p.stages()
	if err != nil {
		return nil, err
	}

	n := len(prices)
	cols := map[string]*series.Series{
		KeyPrice:         series.New(n),
		KeyFiltered:      series.New(n),
		KeyInPhase:       series.New(n),
		KeyQuadrature:    series.New(n),
		KeyPeriod:        series.New(n),
		KeyDominantCycle: series.New(n),
	}
	keys := []string{KeyPrice, KeyFiltered, KeyInPhase, KeyQuadrature, KeyPeriod, KeyDominantCycle}

	var osc []float64
	if st.frame != nil {
		cols[KeyWindow] = series.New(n)
		cols[p.indicator] = series.New(n)
		keys = append(keys, KeyWindow, p.indicator)
		osc = make([]float64, 0, n)
	}

	gaps := 0
	for _, price := range prices {
		if !core.Finite(price) {
			gaps++
		}
		filt := st.roof.ProcessSample(price)
		pair := st.gen.Next(filt)
		period := st.est.Next(filt)

		cols[KeyPrice].Append(price)
		cols[KeyFiltered].Append(filt)
		cols[KeyInPhase].Append(pair.InPhase)
		cols[KeyQuadrature].Append(pair.Quadrature)
		cols[KeyPeriod].Append(period)
		cols[KeyDominantCycle].Append(math.Round(period))

		if st.frame == nil {
			continue
		}
		v := st.frame.Next(filt, period)
		if st.smooth != nil {
			v = st.smooth.ProcessSample(v)
		}
		cols[KeyWindow].Append(float64(st.frame.Window()))
		cols[p.indicator].Append(v)
		osc = append(osc, v)
	}

	if p.trigger {
		cols[KeyTrigger] = series.FromValues(p.triggerLine(osc))
		keys = append(keys, KeyTrigger)
	}

	set := series.NewSet()
	for _, k := range keys {
		if err := set.Add(k, cols[k]); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}

	if gaps > 0 {
		p.logger.Warn("non-finite prices held at the previous bar", zap.Int("bars", gaps))
	}

	res := &Result{Set: set}
	p.summarize(res, cols[KeyFiltered].Values())

	p.logger.Debug("pipeline run",
		zap.Int("bars", n),
		zap.Float64("lastPeriod", st.est.Period()),
		zap.Float64("globalCycle", res.GlobalCycle),
	)

	return res, nil
}

// triggerLine is the moving average of the oscillator, zero until the
// average has produced its first value.
func (p *Pipeline) triggerLine(osc []float64) []float64 {
	if len(osc) <= averageLookback(p.triggerAverage, p.triggerLength) {
		return make([]float64, len(osc))
	}
	return talib.Ma(osc, p.triggerLength, p.triggerAverage)
}

// averageLookback is the number of leading bars a talib moving average of
// length n leaves at zero. Cascaded EMAs each consume n-1 bars.
func averageLookback(t talib.MaType, n int) int {
	switch t {
	case talib.DEMA:
		return 2 * (n - 1)
	case talib.TEMA:
		return 3 * (n - 1)
	case talib.T3MA:
		return 6 * (n - 1)
	default:
		return n - 1
	}
}

// summarize fills the whole-series fields. The periodogram fields stay zero
// for series shorter than the roofing band.
func (p *Pipeline) summarize(res *Result, filtered []float64) {
	res.Filtered = timestats.Calculate(filtered)

	band := core.Band{Min: p.roofLower, Max: p.roofUpper}

	pg, err := spectrum.Periodogram(filtered, band)
	if err != nil {
		p.logger.Debug("periodogram skipped", zap.Error(err))
		return
	}

	res.Spectrum = pg.Stats()
	res.GlobalCycle = res.Spectrum.PeakPeriod
}
