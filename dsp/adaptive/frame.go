package adaptive

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/delay"
)

var (
	// ErrInvalidCapacity is returned for history capacities below one bar.
	ErrInvalidCapacity = errors.New("adaptive: capacity must be >= 1")
	// ErrInvalidFraction is returned for cycle fractions that are not
	// finite and positive.
	ErrInvalidFraction = errors.New("adaptive: fraction must be finite and > 0")
	// ErrNilStatistic is returned when no statistic is given.
	ErrNilStatistic = errors.New("adaptive: statistic is nil")
	// ErrUnknownStatistic is returned by ParseStatistic.
	ErrUnknownStatistic = errors.New("adaptive: unknown statistic")
	// ErrUnknownIndicator is returned by LookupPreset.
	ErrUnknownIndicator = errors.New("adaptive: unknown indicator")
)

// WindowLength returns clamp(ceil(fraction*period), 1, capacity). A period
// that is not finite maps to a one-bar window.
func WindowLength(period, fraction float64, capacity int) int {
	n := math.Ceil(fraction * period)
	if !core.Finite(n) {
		return 1
	}
	return int(core.Clamp(n, 1, float64(capacity)))
}

// Frame evaluates a statistic over a window sized from the current cycle
// period.
type Frame struct {
	history  *delay.Line
	buf      []float64
	fraction float64
	stat     Statistic
	window   int
}

// NewFrame returns a frame holding up to capacity values whose window is
// fraction times the period.
func NewFrame(capacity int, fraction float64, stat Statistic) (*Frame, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if !core.Finite(fraction) || fraction <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFraction, fraction)
	}
	if stat == nil {
		return nil, ErrNilStatistic
	}

	return &Frame{
		history:  delay.MustNew(capacity),
		buf:      make([]float64, capacity),
		fraction: fraction,
		stat:     stat,
	}, nil
}

// Next appends value and evaluates the statistic over the newest
// WindowLength(period) values. Fewer are used while the history fills.
func (f *Frame) Next(value, period float64) float64 {
	f.history.Write(value)
	f.window = WindowLength(period, f.fraction, f.history.Len())
	return f.stat.Evaluate(f.history.Recent(f.buf, f.window))
}

// Window returns the number of values the last evaluation used.
func (f *Frame) Window() int {
	return min(f.window, f.history.Filled())
}

// Capacity returns the history capacity.
func (f *Frame) Capacity() int { return f.history.Len() }

// Fraction returns the cycle fraction.
func (f *Frame) Fraction() float64 { return f.fraction }

// Statistic returns the statistic.
func (f *Frame) Statistic() Statistic { return f.stat }

// Reset clears the history.
func (f *Frame) Reset() {
	f.history.Reset()
	f.window = 0
}
