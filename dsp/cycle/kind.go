package cycle

import (
	"fmt"
	"strings"
)

// Estimator turns one conditioned bar into a dominant cycle period.
type Estimator interface {
	// Next consumes one bar and returns the smoothed period in bars.
	Next(x float64) float64
	// Period returns the last reported period without consuming input.
	Period() float64
	// Reset restores the construction state.
	Reset()
	// Kind names the estimator.
	Kind() Kind
}

// Spectral is implemented by estimators that compute a power spectrum over
// their candidate periods.
type Spectral interface {
	Estimator
	// Periods returns the in-band candidate periods, ascending.
	Periods() []float64
	// Spectrum returns the normalised power of the last bar per candidate.
	Spectrum() []float64
	// Decibels returns Spectrum mapped onto the 0..20 dB display scale.
	Decibels() []float64
}

// Kind identifies an estimator.
type Kind int

const (
	KindHomodyne Kind = iota
	KindDualDifferentiator
	KindPhaseAccumulation
	KindAutocorrelation
	KindDFT
	KindComb
)

var kindNames = map[Kind]string{
	KindHomodyne:           "homodyne",
	KindDualDifferentiator: "dual-differentiator",
	KindPhaseAccumulation:  "phase-accumulation",
	KindAutocorrelation:    "autocorrelation",
	KindDFT:                "dft",
	KindComb:               "comb",
}

// Kinds returns all estimator kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindHomodyne, KindDualDifferentiator, KindPhaseAccumulation,
		KindAutocorrelation, KindDFT, KindComb,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Spectral reports whether estimators of this kind implement Spectral.
func (k Kind) Spectral() bool {
	return k == KindAutocorrelation || k == KindDFT || k == KindComb
}

// ParseKind maps a name produced by String back to a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New constructs an estimator of the given kind. On error the returned
// Estimator is nil.
func New(kind Kind, opts ...Option) (Estimator, error) {
	var (
		est Estimator
		err error
	)
	switch kind {
	case KindHomodyne:
		est, err = checked[*Homodyne](NewHomodyne(opts...))
	case KindDualDifferentiator:
		est, err = checked[*DualDifferentiator](NewDualDifferentiator(opts...))
	case KindPhaseAccumulation:
		est, err = checked[*PhaseAccumulation](NewPhaseAccumulation(opts...))
	case KindAutocorrelation:
		est, err = checked[*Autocorrelation](NewAutocorrelation(opts...))
	case KindDFT:
		est, err = checked[*DFT](NewDFT(opts...))
	case KindComb:
		est, err = checked[*Comb](NewComb(opts...))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	return est, err
}

// checked keeps a failed constructor from leaking a typed nil pointer into
// the Estimator interface.
func checked[E Estimator](e E, err error) (Estimator, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}
