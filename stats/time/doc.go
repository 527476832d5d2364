// Package time computes bar-domain statistics: whole-series summaries of
// oscillator and period streams ([Calculate], [StreamingStats]) and the
// lookback-window statistics that adaptive indicators recompute every bar.
package time
