package time

import "math"

// The functions in this file evaluate indicator statistics over a lookback
// window given oldest first, so the newest bar is window[len(window)-1].
// Every division is guarded: a zero denominator yields 0.

// Highest returns the largest value in the window, or 0 when it is empty.
func Highest(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	h := window[0]
	for _, v := range window[1:] {
		if v > h {
			h = v
		}
	}
	return h
}

// Lowest returns the smallest value in the window, or 0 when it is empty.
func Lowest(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	l := window[0]
	for _, v := range window[1:] {
		if v < l {
			l = v
		}
	}
	return l
}

// Span returns Highest - Lowest.
func Span(window []float64) float64 {
	return Highest(window) - Lowest(window)
}

// Stochastic returns 100 * (newest - lowest) / (highest - lowest).
func Stochastic(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	lo, hi := Lowest(window), Highest(window)
	return guard(100*(window[len(window)-1]-lo), hi-lo)
}

// MeanDeviation returns the mean absolute deviation from the window mean.
func MeanDeviation(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	mean := Mean(window)
	sum := 0.0
	for _, v := range window {
		sum += math.Abs(v - mean)
	}
	return sum / float64(len(window))
}

// UpDown returns the sums of the rises and of the falls between
// consecutive bars of the window. Both are non-negative.
func UpDown(window []float64) (up, down float64) {
	for i := 1; i < len(window); i++ {
		d := window[i] - window[i-1]
		if d > 0 {
			up += d
		} else {
			down -= d
		}
	}
	return up, down
}

// RelativeStrength returns 100 * up / (up + down) over the window. A window
// that only rises reports exactly 100.
func RelativeStrength(window []float64) float64 {
	up, down := UpDown(window)
	if down == 0 && up > 0 {
		return 100
	}
	return min(max(guard(100*up, up+down), 0), 100)
}

// CenterOfGravity returns the centre of gravity oscillator
//
//	CG = -sum((1+i) * x[newest-i]) / sum(x) + (n+1)/2
//
// which is zero for a flat window and leads turning points.
func CenterOfGravity(window []float64) float64 {
	n := len(window)
	if n == 0 {
		return 0
	}
	num, den := 0.0, 0.0
	for i := range n {
		x := window[n-1-i]
		num += float64(1+i) * x
		den += x
	}
	if den == 0 {
		return 0
	}
	return -num/den + float64(n+1)/2
}

// CommodityChannel returns (newest - mean) / (0.015 * meanDeviation).
func CommodityChannel(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	return guard(window[len(window)-1]-Mean(window), 0.015*MeanDeviation(window))
}

func guard(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
