package pipeline

import (
	"fmt"
	"strings"

	"github.com/markcheno/go-talib"

	"github.com/cwbudde/algo-cycle/dsp/cycle"
	"github.com/cwbudde/algo-cycle/dsp/quadrature"
	"github.com/cwbudde/algo-cycle/dsp/window"
	"github.com/cwbudde/algo-cycle/internal/config"
	"github.com/cwbudde/algo-cycle/series"
)

var averages = map[string]talib.MaType{
	"sma":   talib.SMA,
	"ema":   talib.EMA,
	"wma":   talib.WMA,
	"dema":  talib.DEMA,
	"tema":  talib.TEMA,
	"trima": talib.TRIMA,
}

// ParseAverage maps a moving average name such as "ema" to its type.
func ParseAverage(name string) (talib.MaType, error) {
	t, ok := averages[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("pipeline: unknown moving average %q", name)
	}
	return t, nil
}

// FromConfig builds a pipeline from a validated configuration. Extra
// options are applied last.
func FromConfig(cfg config.Pipeline, extra ...Option) (*Pipeline, error) {
	price, err := series.ParsePriceField(cfg.Price)
	if err != nil {
		return nil, err
	}
	kind, err := cycle.ParseKind(cfg.Estimator.Kind)
	if err != nil {
		return nil, err
	}
	variant, err := quadrature.ParseVariant(cfg.Estimator.Quadrature)
	if err != nil {
		return nil, err
	}
	cycleOpts, err := estimatorOptions(cfg.Estimator)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithPriceField(price),
		WithRoofing(cfg.Roofing.Upper, cfg.Roofing.Lower),
		WithEstimator(kind, cycleOpts...),
		WithQuadrature(variant),
	}

	switch cfg.Indicator.Name {
	case "none", "":
		opts = append(opts, WithIndicator(""))
	default:
		opts = append(opts,
			WithIndicator(cfg.Indicator.Name),
			WithFrame(cfg.Indicator.Fraction, cfg.Indicator.Capacity),
		)
		if cfg.Indicator.Smoothing != nil {
			opts = append(opts, WithSmoothing(*cfg.Indicator.Smoothing))
		}
	}

	if cfg.Trigger.Enabled {
		avg, err := ParseAverage(cfg.Trigger.Average)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTrigger(cfg.Trigger.Length, avg))
	}

	return New(append(opts, extra...)...)
}

func estimatorOptions(e config.Estimator) ([]cycle.Option, error) {
	taper, err := window.ParseType(e.Taper)
	if err != nil {
		return nil, err
	}

	opts := []cycle.Option{
		cycle.WithSmoothLength(e.SmoothLength),
		cycle.WithTaper(taper),
		cycle.WithBandwidth(e.Bandwidth),
		cycle.WithDecay(e.Decay),
		cycle.WithWindowLength(e.WindowLength),
	}
	if e.MinPeriod != 0 || e.MaxPeriod != 0 {
		opts = append(opts, cycle.WithBand(e.MinPeriod, e.MaxPeriod))
	}
	if e.AverageLength != nil {
		opts = append(opts, cycle.WithAverageLength(*e.AverageLength))
	}
	if e.FractionalCount != nil {
		opts = append(opts, cycle.WithFractionalCount(*e.FractionalCount))
	}
	if len(e.DeltaLimits) == 2 {
		opts = append(opts, cycle.WithDeltaLimits(e.DeltaLimits[0], e.DeltaLimits[1]))
	}
	return opts, nil
}
