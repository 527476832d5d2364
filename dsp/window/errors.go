package window

import "errors"

var (
	errEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
	errMismatchedLength = errors.New("window: block and coefficients differ in length")
	errUnknownType      = errors.New("window: unknown type")
)
