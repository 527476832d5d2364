package cycle

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/quadrature"
	"github.com/cwbudde/algo-cycle/dsp/window"
)

// Defaults shared by the estimators.
const (
	DefaultSmoothLength  = 10
	DefaultAverageLength = 3
	DefaultBandwidth     = 0.1
	DefaultDecay         = 0.995
	DefaultMinDelta      = 1.0
)

func defaultQuadratureBand() core.Band {
	return core.DefaultBand()
}

// SpectralBand returns the 10..48 bar band used by the spectral estimators.
func SpectralBand() core.Band {
	return core.Band{Min: 10, Max: 48}
}

type config struct {
	band          core.Band
	bandSet       bool
	variant       quadrature.Variant
	smoothLength  float64
	averageLength int
	windowLength  int
	taper         window.Type
	bandwidth     float64
	minDelta      float64
	maxDelta      float64
	decay         float64
	fractional    bool
}

// Option configures an estimator. Options that do not apply to an estimator
// are ignored.
type Option func(*config)

// WithBand sets the inclusive period band. Quadrature estimators default to
// 6..50 bars, spectral estimators to 10..48.
func WithBand(minPeriod, maxPeriod float64) Option {
	return func(c *config) {
		c.band = core.Band{Min: minPeriod, Max: maxPeriod}
		c.bandSet = true
	}
}

// WithQuadrature selects the quadrature generator. Default is Classic.
func WithQuadrature(v quadrature.Variant) Option {
	return func(c *config) { c.variant = v }
}

// WithSmoothLength sets the length of the period smoother. Default 10.
func WithSmoothLength(length float64) Option {
	return func(c *config) { c.smoothLength = length }
}

// WithAverageLength sets the correlation length of the autocorrelation
// estimator. Zero correlates over the lag itself. Default 3.
func WithAverageLength(n int) Option {
	return func(c *config) { c.averageLength = n }
}

// WithWindowLength sets the DFT window in bars. Default is four times the
// max period.
func WithWindowLength(n int) Option {
	return func(c *config) { c.windowLength = n }
}

// WithTaper sets the DFT taper. Default is rectangular.
func WithTaper(t window.Type) Option {
	return func(c *config) { c.taper = t }
}

// WithBandwidth sets the comb filter bandwidth. Default 0.1.
func WithBandwidth(bw float64) Option {
	return func(c *config) { c.bandwidth = bw }
}

// WithDeltaLimits sets the per-bar phase advance limits of the phase
// accumulation estimator, in degrees. Default is [1, 360/minPeriod].
func WithDeltaLimits(minDelta, maxDelta float64) Option {
	return func(c *config) {
		c.minDelta = minDelta
		c.maxDelta = maxDelta
	}
}

// WithDecay sets the per-bar decay of the spectral normalisation peak.
// Default 0.995.
func WithDecay(d float64) Option {
	return func(c *config) { c.decay = d }
}

// WithFractionalCount toggles interpolation of the bar at which the phase
// accumulation crosses 360 degrees. Default on.
func WithFractionalCount(on bool) Option {
	return func(c *config) { c.fractional = on }
}

func newConfig(defaultBand core.Band, opts []Option) (config, error) {
	cfg := config{
		band:          defaultBand,
		variant:       quadrature.Classic,
		smoothLength:  DefaultSmoothLength,
		averageLength: DefaultAverageLength,
		taper:         window.TypeRectangular,
		bandwidth:     DefaultBandwidth,
		minDelta:      DefaultMinDelta,
		decay:         DefaultDecay,
		fractional:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.band.Validate(); err != nil {
		return cfg, err
	}
	if math.IsNaN(cfg.smoothLength) || cfg.smoothLength < 2 {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidSmoothLength, cfg.smoothLength)
	}
	if cfg.averageLength < 0 || cfg.averageLength == 1 {
		return cfg, fmt.Errorf("%w: %d", ErrInvalidAverageLength, cfg.averageLength)
	}
	if math.IsNaN(cfg.decay) || cfg.decay <= 0 || cfg.decay > 1 {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidDecay, cfg.decay)
	}
	if cfg.maxDelta == 0 {
		cfg.maxDelta = 360 / cfg.band.Min
	}
	if !(cfg.minDelta > 0) || cfg.maxDelta < cfg.minDelta {
		return cfg, fmt.Errorf("%w: [%v, %v]", ErrInvalidDeltaLimits, cfg.minDelta, cfg.maxDelta)
	}

	return cfg, nil
}
