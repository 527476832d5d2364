// Package biquad describes second-order IIR transfer functions.
//
// [Coefficients] hold the numerator and denominator of one section in the
// normalized form
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
//
// and a [Chain] multiplies several sections into a cascade. Frequencies are
// expressed as cycle periods measured in bars (frequency = 1/period cycles
// per bar), which is how the recursive filters in dsp/filter/ehlers are
// parameterized.
//
// This package provides analysis only (frequency response, phase, poles and
// zeros). The per-bar recursions live with the filters themselves so that
// their warm-up behavior can be controlled exactly.
package biquad
