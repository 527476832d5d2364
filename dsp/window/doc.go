// Package window generates taper windows for block spectral analysis of bar
// series. Windows are generated in symmetric form by default;
// [WithPeriodic] selects the FFT-framing form.
package window
