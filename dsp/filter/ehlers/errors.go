package ehlers

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidLength is returned for cutoff lengths below two bars.
	ErrInvalidLength = errors.New("ehlers: length must be a finite value >= 2")
	// ErrInvalidBandwidth is returned for bandwidth fractions outside (0, 1).
	ErrInvalidBandwidth = errors.New("ehlers: bandwidth must be in (0, 1)")
	// ErrInvalidPoles is returned for unsupported pole counts.
	ErrInvalidPoles = errors.New("ehlers: unsupported pole count")
)

func validateLength(length float64) error {
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 2 {
		return fmt.Errorf("%w: %v", ErrInvalidLength, length)
	}
	return nil
}

func validateBandwidth(bw float64) error {
	if math.IsNaN(bw) || bw <= 0 || bw >= 1 {
		return fmt.Errorf("%w: %v", ErrInvalidBandwidth, bw)
	}
	return nil
}
