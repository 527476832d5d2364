package time

import "math"

// Stats summarises a whole bar series, typically the filtered price or an
// oscillator column of one analysis run.
type Stats struct {
	Length        int
	Mean          float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	Range         float64 // max - min
	Energy        float64 // sum of squares
	ZeroCrossings int
	Variance      float64
	StdDev        float64
	Skewness      float64
	Kurtosis      float64
}

// CrossingPeriod estimates the average cycle length in bars from the zero
// crossings: a full cycle crosses zero twice. It returns 0 when the series
// never changes sign.
func (s Stats) CrossingPeriod() float64 {
	if s.ZeroCrossings == 0 || s.Length < 2 {
		return 0
	}
	return 2 * float64(s.Length-1) / float64(s.ZeroCrossings)
}

// Calculate summarises a series in one pass. It yields exactly what a
// [StreamingStats] fed the same bars would.
func Calculate(series []float64) Stats {
	var s StreamingStats
	s.Update(series)
	return s.Result()
}

// RMS returns the root-mean-square of the series.
func RMS(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range series {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(series)))
}

// Mean returns the arithmetic mean with compensated summation.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum, comp float64
	for _, x := range series {
		y := x - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}
	return sum / float64(len(series))
}

// Peak returns the largest absolute value.
func Peak(series []float64) float64 {
	peak := 0.0
	for _, x := range series {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// ZeroCrossings counts sign changes between non-zero bars. A bar that is
// exactly zero is skipped, so 1, 0, -1 crosses once.
func ZeroCrossings(series []float64) int {
	count := 0
	last := 0.0
	for _, x := range series {
		if x == 0 {
			continue
		}
		if last*x < 0 {
			count++
		}
		last = x
	}
	return count
}

// Moments returns the mean, population variance, skewness and excess
// kurtosis of the series.
func Moments(series []float64) (mean, variance, skewness, kurtosis float64) {
	var m moments
	for _, x := range series {
		m.add(x)
	}
	variance, skewness, kurtosis = m.shape()
	return m.mean, variance, skewness, kurtosis
}

// moments holds Welford accumulators up to the fourth central moment.
type moments struct {
	n          int
	mean       float64
	m2, m3, m4 float64
}

func (m *moments) add(x float64) {
	m.n++
	n := float64(m.n)
	delta := x - m.mean
	dn := delta / n
	dn2 := dn * dn
	term := delta * dn * (n - 1)

	// Update order matters: m4 reads m3 and m2, m3 reads m2.
	m.m4 += term*dn2*(n*n-3*n+3) + 6*dn2*m.m2 - 4*dn*m.m3
	m.m3 += term*dn*(n-2) - 3*dn*m.m2
	m.m2 += term
	m.mean += dn
}

func (m *moments) shape() (variance, skewness, kurtosis float64) {
	if m.n == 0 {
		return 0, 0, 0
	}
	n := float64(m.n)
	variance = m.m2 / n
	if variance > 0 {
		skewness = (m.m3 / n) / (variance * math.Sqrt(variance))
		kurtosis = (m.m4/n)/(variance*variance) - 3
	}
	return variance, skewness, kurtosis
}

// StreamingStats accumulates [Stats] bar by bar, so a live feed can be
// summarised without keeping its history.
type StreamingStats struct {
	moments
	sumSq     float64
	max, min  float64
	maxPos    int
	minPos    int
	crossings int
	last      float64
}

// NewStreamingStats returns an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds bars to the running statistics.
func (s *StreamingStats) Update(bars []float64) {
	for _, x := range bars {
		pos := s.n
		s.add(x)
		s.sumSq += x * x

		switch {
		case pos == 0:
			s.max, s.min = x, x
		case x > s.max:
			s.max, s.maxPos = x, pos
		case x < s.min:
			s.min, s.minPos = x, pos
		}

		if x != 0 {
			if s.last*x < 0 {
				s.crossings++
			}
			s.last = x
		}
	}
}

// Result returns the statistics of every bar seen so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}
	variance, skewness, kurtosis := s.shape()
	return Stats{
		Length:        s.n,
		Mean:          s.mean,
		RMS:           math.Sqrt(s.sumSq / float64(s.n)),
		Max:           s.max,
		MaxPos:        s.maxPos,
		Min:           s.min,
		MinPos:        s.minPos,
		Peak:          math.Max(math.Abs(s.max), math.Abs(s.min)),
		Range:         s.max - s.min,
		Energy:        s.sumSq,
		ZeroCrossings: s.crossings,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		Skewness:      skewness,
		Kurtosis:      kurtosis,
	}
}

// Reset clears the accumulator for reuse.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
