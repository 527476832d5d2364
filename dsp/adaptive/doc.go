// Package adaptive evaluates windowed statistics whose window follows the
// measured dominant cycle.
//
// A [Frame] keeps a bounded history and, every bar, evaluates its
// [Statistic] over the newest ceil(k*period) values. [Indicator] chains the
// full stage graph of an adaptive oscillator: roofing filter, cycle
// estimator, frame and optional output smoothing.
package adaptive
