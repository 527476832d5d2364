// Package cycle estimates the dominant cycle period of a conditioned bar
// series.
//
// Two families are provided. Quadrature estimators (Homodyne,
// DualDifferentiator, PhaseAccumulation) read the instantaneous phase rate of
// an analytic signal produced by a [quadrature.Generator]. Spectral
// estimators (Autocorrelation, DFT, Comb) compute power over a range of
// candidate periods and take the centroid of the strongest bins. Their
// candidates extend past the band so the centroid of a cycle at the band
// edge is not cut short.
//
// The classic quadrature's gain varies with the cycle period; quadrature
// estimators divide it out at the last reported period.
//
// Every estimator feeds its raw period through the same conditioning:
// clamp to the period band, a fixed two-pole smoother, clamp again. The
// reported period is therefore always finite and inside the band.
//
// Inputs are expected to be band limited already, typically the output of
// [ehlers.Roofing]. Estimators are single-series state machines and are not
// safe for concurrent use.
//
// [quadrature.Generator]: github.com/cwbudde/algo-cycle/dsp/quadrature
// [ehlers.Roofing]: github.com/cwbudde/algo-cycle/dsp/filter/ehlers
package cycle
