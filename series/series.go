package series

import (
	"math"

	"github.com/shopspring/decimal"
)

// Series is an ordered, append-only column of values. Index 0 is the oldest
// bar.
type Series struct {
	values []float64
}

// New returns an empty series with room for capacity values.
func New(capacity int) *Series {
	return &Series{values: make([]float64, 0, max(capacity, 0))}
}

// FromValues returns a series holding a copy of values.
func FromValues(values []float64) *Series {
	return &Series{values: append([]float64(nil), values...)}
}

// Append adds one value at the end.
func (s *Series) Append(v float64) {
	s.values = append(s.values, v)
}

// Len returns the number of values.
func (s *Series) Len() int { return len(s.values) }

// At returns the value at index i. It panics when i is out of range.
func (s *Series) At(i int) float64 { return s.values[i] }

// Last returns the newest value, or 0 for an empty series.
func (s *Series) Last() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

// Values returns a copy of the values.
func (s *Series) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Rounded returns the values rounded half away from zero to places decimal
// places for display. Stored values are not changed. NaN and ±Inf pass
// through unrounded.
func (s *Series) Rounded(places int32) []float64 {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = round(v, places)
	}
	return out
}

func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
