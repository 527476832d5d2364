package cycle

import "errors"

var (
	// ErrUnknownKind is returned by New and ParseKind for unknown estimators.
	ErrUnknownKind = errors.New("cycle: unknown estimator kind")
	// ErrInvalidSmoothLength is returned for period smoother lengths < 2.
	ErrInvalidSmoothLength = errors.New("cycle: smooth length must be >= 2")
	// ErrInvalidAverageLength is returned for correlation lengths other than
	// zero or at least two.
	ErrInvalidAverageLength = errors.New("cycle: average length must be 0 or >= 2")
	// ErrInvalidWindow is returned when the DFT window cannot hold the
	// longest candidate period.
	ErrInvalidWindow = errors.New("cycle: window length must cover the max period")
	// ErrInvalidDecay is returned for normalisation decays outside (0, 1].
	ErrInvalidDecay = errors.New("cycle: decay must be in (0, 1]")
	// ErrInvalidDeltaLimits is returned for phase delta limits that are not
	// positive and ordered.
	ErrInvalidDeltaLimits = errors.New("cycle: invalid phase delta limits")
)
