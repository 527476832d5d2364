// Package pipeline wires the cycle analysis stages into one run over a bar
// series and packages every intermediate column into a series.Set.
//
// The stage graph is fixed: price field, roofing filter, quadrature tap,
// cycle estimator, adaptive frame, output smoother and optional trigger
// line. Each stage is constructed independently from the options, so a
// pipeline can be rebuilt per series and run concurrently with others.
package pipeline
