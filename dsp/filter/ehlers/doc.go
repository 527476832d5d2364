// Package ehlers implements the recursive filters used for cycle analysis of
// bar series: 1- and 2-pole high-pass, the 2- and 3-pole "super smoother"
// low-pass, the roofing filter (high-pass cascaded into a super smoother),
// band-pass and band-stop resonators, and the decycler.
//
// Every filter is a fixed-order IIR recursion whose coefficients come from
// closed-form pole placement on a cutoff length measured in bars. Each
// instance owns its [State]; nothing is shared between instances, so one
// filter per instrument can run on its own goroutine without locking.
//
// Warm-up: for the first Order() bars a filter outputs exactly 0. Missing
// history is treated as zero rather than as the raw input, which biases the
// first outputs but keeps high-pass filters at exactly 0 on constant input.
//
// Trigonometric arguments derived from the length are clamped into
// [0.01, 0.99] radians before use, trading accuracy at very short lengths for
// numerically tame coefficients.
package ehlers
