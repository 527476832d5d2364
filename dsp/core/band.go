package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBand is returned when a period band is empty, inverted or below
// the Nyquist limit of two bars.
var ErrInvalidBand = errors.New("invalid period band")

// MinPeriod is the shortest cycle that can be represented in bar data.
const MinPeriod = 2.0

// Band is an inclusive [Min, Max] range of cycle periods measured in bars.
type Band struct {
	Min float64
	Max float64
}

// DefaultBand returns the 6..50 bar band used by the quadrature estimators.
func DefaultBand() Band {
	return Band{Min: 6, Max: 50}
}

// Validate checks that the band is finite, ordered and at least two bars wide
// at its lower edge.
func (b Band) Validate() error {
	if !Finite(b.Min) || !Finite(b.Max) {
		return fmt.Errorf("%w: non-finite bounds [%v, %v]", ErrInvalidBand, b.Min, b.Max)
	}

	if b.Min < MinPeriod {
		return fmt.Errorf("%w: min period %v below %v bars", ErrInvalidBand, b.Min, MinPeriod)
	}

	if b.Min > b.Max {
		return fmt.Errorf("%w: min period %v > max period %v", ErrInvalidBand, b.Min, b.Max)
	}

	return nil
}

// Clamp limits p to the band.
func (b Band) Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return b.Min
	}

	return Clamp(p, b.Min, b.Max)
}

// Contains reports whether p lies inside the band.
func (b Band) Contains(p float64) bool {
	return p >= b.Min && p <= b.Max
}

// IntBounds returns the integer candidate periods covered by the band.
func (b Band) IntBounds() (lo, hi int) {
	lo = int(math.Ceil(b.Min))
	hi = int(math.Floor(b.Max))
	if hi < lo {
		hi = lo
	}

	return lo, hi
}
