package adaptive

import (
	"fmt"

	"github.com/cwbudde/algo-cycle/dsp/cycle"
	"github.com/cwbudde/algo-cycle/dsp/filter/ehlers"
)

// DefaultCapacity covers the longest default cycle band.
const DefaultCapacity = 50

// Output is one bar of an adaptive indicator.
type Output struct {
	Value    float64
	Period   float64
	Filtered float64
	Window   int
}

// Indicator is the stage chain of an adaptive oscillator: roofing filter,
// cycle estimator, frame over the filtered series and optional
// SuperSmoother on the frame output.
type Indicator struct {
	name   string
	roof   *ehlers.Roofing
	est    cycle.Estimator
	frame  *Frame
	smooth *ehlers.SuperSmoother
}

type indicatorConfig struct {
	upper, lower float64
	kind         cycle.Kind
	cycleOpts    []cycle.Option
	capacity     int
	fraction     float64
	smoothLength float64
}

// IndicatorOption configures an Indicator.
type IndicatorOption func(*indicatorConfig)

// WithRoofing sets the roofing filter cutoffs. Default 48 and 10 bars.
func WithRoofing(upper, lower float64) IndicatorOption {
	return func(c *indicatorConfig) {
		c.upper = upper
		c.lower = lower
	}
}

// WithEstimator selects the cycle estimator. Default is the homodyne
// discriminator.
func WithEstimator(kind cycle.Kind, opts ...cycle.Option) IndicatorOption {
	return func(c *indicatorConfig) {
		c.kind = kind
		c.cycleOpts = opts
	}
}

// WithCapacity sets the frame history capacity. Default 50 bars.
func WithCapacity(n int) IndicatorOption {
	return func(c *indicatorConfig) { c.capacity = n }
}

// WithFraction overrides the indicator's cycle fraction.
func WithFraction(k float64) IndicatorOption {
	return func(c *indicatorConfig) { c.fraction = k }
}

// WithSmoothing sets the output SuperSmoother length. Zero disables it.
func WithSmoothing(length float64) IndicatorOption {
	return func(c *indicatorConfig) { c.smoothLength = length }
}

// NewIndicator chains the stages around stat. fraction and smoothLength are
// the indicator's defaults; options may override them.
func NewIndicator(name string, stat Statistic, fraction, smoothLength float64, opts ...IndicatorOption) (*Indicator, error) {
	cfg := indicatorConfig{
		upper:        48,
		lower:        10,
		kind:         cycle.KindHomodyne,
		capacity:     DefaultCapacity,
		fraction:     fraction,
		smoothLength: smoothLength,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	roof, err := ehlers.NewRoofing(cfg.upper, cfg.lower)
	if err != nil {
		return nil, err
	}
	est, err := cycle.New(cfg.kind, cfg.cycleOpts...)
	if err != nil {
		return nil, err
	}
	frame, err := NewFrame(cfg.capacity, cfg.fraction, stat)
	if err != nil {
		return nil, err
	}

	ind := &Indicator{name: name, roof: roof, est: est, frame: frame}
	if cfg.smoothLength > 0 {
		ind.smooth, err = ehlers.NewSuperSmoother(cfg.smoothLength, ehlers.SmootherDirect)
		if err != nil {
			return nil, err
		}
	}

	return ind, nil
}

// Preset is the default configuration of a named adaptive oscillator.
type Preset struct {
	Name         string
	Statistic    Statistic
	Fraction     float64
	SmoothLength float64
}

var presets = []Preset{
	{Name: "stochastic", Statistic: Stochastic, Fraction: 1, SmoothLength: 10},
	{Name: "rsi", Statistic: UpDown, Fraction: 0.5, SmoothLength: 10},
	{Name: "cci", Statistic: CCI, Fraction: 1},
	{Name: "cg", Statistic: CenterOfGravity, Fraction: 0.5},
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
}

// PresetNames lists the preset names.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// NewPreset chains the stages of the named preset.
func NewPreset(name string, opts ...IndicatorOption) (*Indicator, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	return NewIndicator(p.Name, p.Statistic, p.Fraction, p.SmoothLength, opts...)
}

// NewStochastic returns the adaptive stochastic: position of the filtered
// series within its range over one full cycle, 0..100, smoothed over 10
// bars.
func NewStochastic(opts ...IndicatorOption) (*Indicator, error) {
	return NewPreset("stochastic", opts...)
}

// NewRSI returns the adaptive RSI over half a cycle, smoothed over 10 bars.
func NewRSI(opts ...IndicatorOption) (*Indicator, error) {
	return NewPreset("rsi", opts...)
}

// NewCCI returns the adaptive commodity channel index over one cycle.
func NewCCI(opts ...IndicatorOption) (*Indicator, error) {
	return NewPreset("cci", opts...)
}

// NewCenterOfGravity returns the adaptive center of gravity over half a
// cycle.
func NewCenterOfGravity(opts ...IndicatorOption) (*Indicator, error) {
	return NewPreset("cg", opts...)
}

// Next consumes one price bar.
func (ind *Indicator) Next(price float64) Output {
	filt := ind.roof.ProcessSample(price)
	period := ind.est.Next(filt)
	v := ind.frame.Next(filt, period)
	if ind.smooth != nil {
		v = ind.smooth.ProcessSample(v)
	}

	return Output{
		Value:    v,
		Period:   period,
		Filtered: filt,
		Window:   ind.frame.Window(),
	}
}

// Name returns the indicator name.
func (ind *Indicator) Name() string { return ind.name }

// Estimator returns the cycle estimator stage.
func (ind *Indicator) Estimator() cycle.Estimator { return ind.est }

// Frame returns the frame stage.
func (ind *Indicator) Frame() *Frame { return ind.frame }

// Reset restores every stage.
func (ind *Indicator) Reset() {
	ind.roof.Reset()
	ind.est.Reset()
	ind.frame.Reset()
	if ind.smooth != nil {
		ind.smooth.Reset()
	}
}
