package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/window"
	"github.com/cwbudde/algo-cycle/stats/frequency"
)

// ErrShortBlock is returned when a block is too short to resolve the
// requested band.
var ErrShortBlock = errors.New("spectrum: block shorter than the longest period")

// Spectrum is cycle power sampled at ascending periods in bars.
type Spectrum struct {
	Periods []float64
	Power   []float64
}

// Stats summarises the spectrum.
func (s Spectrum) Stats() frequency.Stats {
	return frequency.Calculate(s.Periods, s.Power)
}

// Normalized returns the power scaled so the strongest period is 1.
func (s Spectrum) Normalized() []float64 {
	m := 0.0
	for _, v := range s.Power {
		m = math.Max(m, v)
	}
	return frequency.Normalize(nil, s.Power, m)
}

// Decibels returns the normalised power on the 0..20 display scale, where 0
// marks the strongest period.
func (s Spectrum) Decibels() []float64 {
	return frequency.Decibels(nil, s.Normalized())
}

type periodogramConfig struct {
	window  window.Type
	padding int
	detrend bool
}

// PeriodogramOption configures Periodogram.
type PeriodogramOption func(*periodogramConfig)

// WithWindow selects the taper applied before the FFT. Default is Hann.
func WithWindow(t window.Type) PeriodogramOption {
	return func(cfg *periodogramConfig) { cfg.window = t }
}

// WithPadding zero-pads the block to at least factor times its length
// before the FFT. Default is 4.
func WithPadding(factor int) PeriodogramOption {
	return func(cfg *periodogramConfig) {
		if factor >= 1 {
			cfg.padding = factor
		}
	}
}

// WithDetrend controls removal of the block mean before windowing. Default
// is true.
func WithDetrend(on bool) PeriodogramOption {
	return func(cfg *periodogramConfig) { cfg.detrend = on }
}

// Periodogram computes the power spectrum of block at every integer period
// of band. The FFT power is linearly interpolated between the two bins
// surrounding each period's fractional bin index.
func Periodogram(block []float64, band core.Band, opts ...PeriodogramOption) (Spectrum, error) {
	cfg := periodogramConfig{window: window.TypeHann, padding: 4, detrend: true}
	for _, o := range opts {
		o(&cfg)
	}

	if err := band.Validate(); err != nil {
		return Spectrum{}, err
	}

	lo, hi := band.IntBounds()
	if float64(lo) > band.Max {
		return Spectrum{}, fmt.Errorf("%w: no integer period in [%v, %v]", core.ErrInvalidBand, band.Min, band.Max)
	}
	if len(block) < hi {
		return Spectrum{}, fmt.Errorf("%w: %d < %d", ErrShortBlock, len(block), hi)
	}

	samples := append([]float64(nil), block...)
	if cfg.detrend {
		mean := 0.0
		for _, x := range samples {
			mean += x
		}
		mean /= float64(len(samples))
		for i := range samples {
			samples[i] -= mean
		}
	}
	window.Apply(cfg.window, samples, window.WithPeriodic())

	fftSize := nextPowerOf2(len(samples) * cfg.padding)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, x := range samples {
		in[i] = complex(x, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft: %w", err)
	}

	binPower := Power(out[:fftSize/2+1])

	s := Spectrum{
		Periods: make([]float64, 0, hi-lo+1),
		Power:   make([]float64, 0, hi-lo+1),
	}
	for p := lo; p <= hi; p++ {
		s.Periods = append(s.Periods, float64(p))
		s.Power = append(s.Power, interpolateBin(binPower, float64(fftSize)/float64(p)))
	}

	return s, nil
}

func interpolateBin(power []float64, pos float64) float64 {
	i := int(math.Floor(pos))
	if i >= len(power)-1 {
		return power[len(power)-1]
	}
	frac := pos - float64(i)
	return power[i]*(1-frac) + power[i+1]*frac
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
