package frequency

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds statistics of a power spectrum sampled at cycle periods.
//
// periods[i] is the cycle length in bars of bin i; periods need not be
// evenly spaced but must be ascending for Bandwidth to be meaningful.
type Stats struct {
	BinCount   int
	Sum        float64 // sum of powers
	Max        float64
	MaxBin     int
	PeakPeriod float64 // period of the strongest bin
	Min        float64
	MinBin     int
	Average    float64
	Range      float64
	// Spectral shape descriptors
	Centroid  float64 // power-weighted mean period (bars)
	Spread    float64 // power-weighted standard deviation of period (bars)
	Flatness  float64 // Wiener entropy, 0..1
	Bandwidth float64 // half-power width around the peak (bars)
}

// Calculate computes all statistics of a linear power spectrum.
func Calculate(periods, power []float64) Stats {
	n := min(len(periods), len(power))
	if n == 0 {
		return Stats{}
	}

	periods, power = periods[:n], power[:n]

	var s Stats
	s.BinCount = n
	s.Min = power[0]
	s.Max = power[0]
	for i, v := range power {
		s.Sum += v
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
		if v < s.Min {
			s.Min = v
			s.MinBin = i
		}
	}
	s.PeakPeriod = periods[s.MaxBin]
	s.Average = s.Sum / float64(n)
	s.Range = s.Max - s.Min

	s.Centroid = centroid(periods, power, s.Sum)
	s.Spread = spread(periods, power, s.Centroid, s.Sum)
	s.Flatness = flatness(power)
	s.Bandwidth = bandwidth(periods, power)

	return s
}

// Centroid returns the power-weighted mean period:
//
//	centroid = sum(p_i * P_i) / sum(P_i)
//
// It returns 0 when all power is zero.
func Centroid(periods, power []float64) float64 {
	sum := 0.0
	for _, v := range power {
		sum += v
	}
	return centroid(periods, power, sum)
}

func centroid(periods, power []float64, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range power {
		weighted += periods[i] * v
	}
	return weighted / sum
}

// ThresholdCentroid returns the centroid of the bins whose normalised power
// is at least threshold. When no bin qualifies, fallback is returned.
func ThresholdCentroid(periods, norm []float64, threshold, fallback float64) float64 {
	num, den := 0.0, 0.0
	for i, v := range norm {
		if v >= threshold {
			num += periods[i] * v
			den += v
		}
	}
	if den <= 0 {
		return fallback
	}
	return num / den
}

// FrequencyCentroid is ThresholdCentroid taken in frequency. Each bin
// stands for the frequency span of an integer period, 1/p², and the power
// weighted mean frequency is returned as a period. A wide lobe that is
// symmetric in frequency then centres near its peak instead of leaning
// towards the long periods, where integer candidates lie closer together.
func FrequencyCentroid(periods, norm []float64, threshold, fallback float64) float64 {
	num, den := 0.0, 0.0
	for i, v := range norm {
		p := periods[i]
		if v < threshold || p <= 0 {
			continue
		}
		w := v / (p * p)
		num += w
		den += w / p
	}
	if den <= 0 {
		return fallback
	}
	return num / den
}

func spread(periods, power []float64, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	weightedSq := 0.0
	for i, v := range power {
		d := periods[i] - cent
		weightedSq += d * d * v
	}
	return math.Sqrt(weightedSq / sum)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(P_i))) / mean(P_i)
//
// If any bin is zero, 0 is returned.
func Flatness(power []float64) float64 {
	return flatness(power)
}

func flatness(power []float64) float64 {
	n := len(power)
	if n == 0 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range power {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	meanLin := sumLin / float64(n)
	return math.Exp(sumLog/float64(n)) / meanLin
}

// Bandwidth returns the width in bars between the half-power points on
// either side of the spectral peak. Linear interpolation between bins is
// used for more precise estimation.
func Bandwidth(periods, power []float64) float64 {
	return bandwidth(periods, power)
}

func bandwidth(periods, power []float64) float64 {
	n := len(power)
	if n < 2 {
		return 0
	}

	peakBin := 0
	peakVal := power[0]
	for i, v := range power {
		if v > peakVal {
			peakVal = v
			peakBin = i
		}
	}
	if peakVal == 0 {
		return 0
	}

	threshold := peakVal / 2

	lower := periods[0]
	for i := peakBin; i >= 1; i-- {
		if power[i-1] <= threshold && power[i] > threshold {
			lower = interpPeriod(periods[i-1], periods[i], power[i-1], power[i], threshold)
			break
		}
	}

	upper := periods[n-1]
	for i := peakBin; i < n-1; i++ {
		if power[i+1] <= threshold && power[i] > threshold {
			upper = interpPeriod(periods[i], periods[i+1], power[i], power[i+1], threshold)
			break
		}
	}

	if bw := upper - lower; bw > 0 {
		return bw
	}
	return 0
}

// interpPeriod linearly interpolates the period where power crosses
// threshold between two bins.
func interpPeriod(pLow, pHigh, powLow, powHigh, threshold float64) float64 {
	denom := powHigh - powLow
	if denom == 0 {
		return (pLow + pHigh) / 2
	}
	t := (threshold - powLow) / denom
	return pLow + t*(pHigh-pLow)
}

// Normalize writes power/max into dst and returns it. A non-positive max
// yields all zeros. dst is grown when shorter than power.
func Normalize(dst, power []float64, max float64) []float64 {
	if cap(dst) < len(power) {
		dst = make([]float64, len(power))
	}
	dst = dst[:len(power)]

	if max <= 0 || math.IsNaN(max) {
		for i := range dst {
			dst[i] = 0
		}
		return dst
	}

	vecmath.ScaleBlock(dst, power, 1/max)
	return dst
}

// Decibels maps normalised power in [0, 1] onto the display scale
// -10*log10(0.01 / (1 - 0.99*norm)), which runs from 20 (no power) down to
// 0 (the peak). Inputs are clamped to [0, 1].
func Decibels(dst, norm []float64) []float64 {
	if cap(dst) < len(norm) {
		dst = make([]float64, len(norm))
	}
	dst = dst[:len(norm)]

	for i, v := range norm {
		v = math.Max(0, math.Min(1, v))
		dst[i] = -10 * math.Log10(0.01/(1-0.99*v))
	}
	return dst
}
