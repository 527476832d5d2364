package cycle

import (
	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/filter/ehlers"
)

// periodSmoother is the clamp, smooth, clamp stage every estimator ends
// with. Its history is seeded with the first clamped value so the first
// output equals that value.
type periodSmoother struct {
	band       core.Band
	c1, c2, c3 float64
	seeded     bool
	x1, y1, y2 float64
}

func newPeriodSmoother(band core.Band, length float64) periodSmoother {
	c1, c2, c3 := ehlers.SuperSmootherCoefficients(length)
	return periodSmoother{band: band, c1: c1, c2: c2, c3: c3}
}

func (s *periodSmoother) next(raw float64) float64 {
	c := s.band.Clamp(raw)
	if !s.seeded {
		s.x1, s.y1, s.y2 = c, c, c
		s.seeded = true
	}

	y := s.c1*(c+s.x1)/2 + s.c2*s.y1 + s.c3*s.y2
	s.x1 = c
	s.y2, s.y1 = s.y1, y

	return s.band.Clamp(y)
}

func (s *periodSmoother) reset() {
	s.seeded = false
	s.x1, s.y1, s.y2 = 0, 0, 0
}

// sanitize maps non-finite input bars to zero so that a single bad bar
// cannot poison recursive state.
func sanitize(x float64) float64 {
	if !core.Finite(x) {
		return 0
	}
	return x
}
