package adaptive

import (
	"fmt"
	"strings"

	timestats "github.com/cwbudde/algo-cycle/stats/time"
)

// Statistic reduces a window of values, oldest first, to one number.
type Statistic interface {
	Evaluate(window []float64) float64
	Name() string
}

type statistic struct {
	name string
	fn   func([]float64) float64
}

func (s statistic) Evaluate(window []float64) float64 { return s.fn(window) }
func (s statistic) Name() string                      { return s.name }

// StatisticFunc adapts a plain function to Statistic.
func StatisticFunc(name string, fn func([]float64) float64) Statistic {
	return statistic{name: name, fn: fn}
}

// Built-in statistics.
var (
	// Range is highest minus lowest.
	Range = StatisticFunc("range", timestats.Span)
	// Stochastic is the newest value's position in the range, 0..100.
	Stochastic = StatisticFunc("stochastic", timestats.Stochastic)
	// MeanDeviation is the mean absolute deviation from the window mean.
	MeanDeviation = StatisticFunc("mean-deviation", timestats.MeanDeviation)
	// UpDown is the RSI ratio 100*up/(up+down) of bar-to-bar changes.
	UpDown = StatisticFunc("up-down", timestats.RelativeStrength)
	// CenterOfGravity is the zero-centred weighted position of the window
	// mass.
	CenterOfGravity = StatisticFunc("center-of-gravity", timestats.CenterOfGravity)
	// CCI is the commodity channel index of the newest value.
	CCI = StatisticFunc("cci", timestats.CommodityChannel)
)

var builtins = []Statistic{Range, Stochastic, MeanDeviation, UpDown, CenterOfGravity, CCI}

// ParseStatistic returns the built-in statistic with the given name.
func ParseStatistic(name string) (Statistic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range builtins {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStatistic, name)
}
