// Package spectrum estimates cycle power of bar series by period rather than
// by frequency bin.
//
// [Goertzel] and [Bank] evaluate single DFT terms at arbitrary (fractional)
// periods over a sliding window, which is what per-bar spectral cycle
// estimators need. [Periodogram] computes a windowed FFT power spectrum of a
// whole block and resamples it onto integer periods for offline scans.
package spectrum
