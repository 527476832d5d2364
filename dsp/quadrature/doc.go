// Package quadrature builds analytic-signal pairs (in-phase, quadrature)
// from a detrended bar series, the input every phase-based cycle estimator
// works on.
//
// Two generators are provided and they are not interchangeable:
//
//   - [Classic] is a 23-bar antisymmetric FIR Hilbert transformer. Its
//     quadrature output leads the centre-tap in-phase output by exactly 90
//     degrees at every period, with a gain that varies between roughly 0.7
//     and 1 across 6..50 bars.
//   - [PeakNormalized] scales the input by a decaying peak and uses the
//     normalised one-bar difference as the quadrature component. It reacts
//     within a bar but its phase lead is 90 degrees minus half a bar.
package quadrature
