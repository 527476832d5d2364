package cycle

import (
	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/stats/frequency"
)

// centroidThreshold is the normalised power a candidate needs to take part
// in the dominant cycle centroid.
const centroidThreshold = 0.5

// spectralBase holds the per-candidate power of a spectral estimator and
// turns it into a period: decaying-peak normalisation, thresholded centroid
// and the shared period conditioning.
//
// The candidate grid runs past the band on both sides so that a cycle at
// the band edge still sees its whole half-power lobe. Only the in-band
// candidates are reported; the centroid uses all of them and the smoother
// clamps it back into the band.
type spectralBase struct {
	band       core.Band
	candidates []float64
	first      int // index of the band minimum in candidates
	periods    []float64
	power      []float64
	norm       []float64
	db         []float64
	peak       *frequency.PeakTracker
	smooth     periodSmoother
	dominant   float64
	period     float64
}

func newSpectralBase(cfg config) spectralBase {
	candidates, first, count := candidateGrid(cfg.band)

	return spectralBase{
		band:       cfg.band,
		candidates: candidates,
		first:      first,
		periods:    candidates[first : first+count],
		power:      make([]float64, len(candidates)),
		norm:       make([]float64, len(candidates)),
		peak:       frequency.NewPeakTracker(cfg.decay),
		smooth:     newPeriodSmoother(cfg.band, cfg.smoothLength),
		dominant:   cfg.band.Min,
		period:     cfg.band.Min,
	}
}

// candidateGrid returns the integer periods from 4/5 of the band minimum to
// 4/3 of the band maximum, never below core.MinPeriod, together with the
// position and count of the in-band periods.
func candidateGrid(band core.Band) (grid []float64, first, count int) {
	lo, hi := band.IntBounds()
	start := max(4*lo/5, int(core.MinPeriod))
	end := (4*hi + 2) / 3

	grid = make([]float64, 0, end-start+1)
	for p := start; p <= end; p++ {
		grid = append(grid, float64(p))
	}
	return grid, lo - start, hi - lo + 1
}

// finish normalises the current power and advances the period. When no
// candidate reaches the threshold the previous centroid is held.
func (s *spectralBase) finish() float64 {
	s.norm = frequency.Normalize(s.norm, s.power, s.peak.Update(s.power))
	s.dominant = frequency.FrequencyCentroid(s.candidates, s.norm, centroidThreshold, s.dominant)
	s.period = s.smooth.next(s.dominant)
	return s.period
}

// inBand returns the in-band part of a per-candidate slice.
func (s *spectralBase) inBand(v []float64) []float64 {
	return v[s.first : s.first+len(s.periods)]
}

// Period returns the last reported period.
func (s *spectralBase) Period() float64 { return s.period }

// Periods returns the in-band candidate periods, ascending.
func (s *spectralBase) Periods() []float64 {
	return append([]float64(nil), s.periods...)
}

// Spectrum returns a copy of the normalised power of the last bar over the
// in-band candidates.
func (s *spectralBase) Spectrum() []float64 {
	return append([]float64(nil), s.inBand(s.norm)...)
}

// Decibels returns the last normalised spectrum on the 0..20 dB scale, 0 at
// the strongest candidate.
func (s *spectralBase) Decibels() []float64 {
	s.db = frequency.Decibels(s.db, s.inBand(s.norm))
	return append([]float64(nil), s.db...)
}

// Stats summarises the last normalised spectrum.
func (s *spectralBase) Stats() frequency.Stats {
	return frequency.Calculate(s.periods, s.inBand(s.norm))
}

func (s *spectralBase) reset() {
	core.Zero(s.power)
	core.Zero(s.norm)
	s.peak.Reset()
	s.smooth.reset()
	s.dominant = s.band.Min
	s.period = s.band.Min
}
