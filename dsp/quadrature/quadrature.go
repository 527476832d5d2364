package quadrature

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDecay is returned for peak decay factors outside (0, 1).
var ErrInvalidDecay = errors.New("quadrature: decay must be in (0, 1)")

// Pair is one bar of analytic signal.
type Pair struct {
	InPhase    float64
	Quadrature float64
}

// Amplitude returns the instantaneous envelope sqrt(I^2 + Q^2).
func (p Pair) Amplitude() float64 {
	return math.Hypot(p.InPhase, p.Quadrature)
}

// Phase returns the instantaneous phase atan2(Q, I) in radians.
func (p Pair) Phase() float64 {
	return math.Atan2(p.Quadrature, p.InPhase)
}

// Variant names a quadrature construction.
type Variant int

const (
	// Classic is the 23-bar FIR Hilbert transformer.
	Classic Variant = iota
	// PeakNormalized is the peak-normalised one-bar difference.
	PeakNormalized
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case Classic:
		return "classic"
	case PeakNormalized:
		return "peak-normalized"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant maps a name produced by String back to a Variant.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "classic", "":
		return Classic, nil
	case "peak-normalized", "peak":
		return PeakNormalized, nil
	default:
		return 0, fmt.Errorf("quadrature: unknown variant %q", name)
	}
}

// Generator turns one input bar into one analytic-signal pair.
type Generator interface {
	Next(x float64) Pair
	Reset()
	Variant() Variant
}

// Tuned is implemented by generators whose quadrature gain depends on the
// cycle period. Dividing the quadrature output by Gain(period) restores an
// analytic signal of equal in-phase and quadrature amplitude for a cycle of
// that period.
type Tuned interface {
	Gain(period float64) float64
}

type config struct {
	decay float64
}

// Option configures a generator.
type Option func(*config)

// WithDecay sets the per-bar peak decay of the PeakNormalized generator.
// Default is 0.991.
func WithDecay(d float64) Option {
	return func(cfg *config) { cfg.decay = d }
}

// New returns a generator of the given variant.
func New(v Variant, opts ...Option) (Generator, error) {
	cfg := config{decay: DefaultDecay}
	for _, o := range opts {
		o(&cfg)
	}

	switch v {
	case Classic:
		return NewClassic(), nil
	case PeakNormalized:
		g, err := NewPeakNormalized(cfg.decay)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("quadrature: unknown variant %d", int(v))
	}
}
