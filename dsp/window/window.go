package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a taper.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeTriangle
	TypeWelch
)

// Metadata holds the spectral properties of a taper.
type Metadata struct {
	Name            string
	ENBW            float64 // equivalent noise bandwidth in bins
	HighestSidelobe float64 // dB
	CoherentGain    float64
}

// shape evaluates a taper at a normalized position x in [0, 1].
type shape struct {
	meta Metadata
	eval func(x float64) float64
}

var shapes = [...]shape{
	TypeRectangular: {
		Metadata{Name: "Rectangular", ENBW: 1, HighestSidelobe: -13.3, CoherentGain: 1},
		func(float64) float64 { return 1 },
	},
	TypeHann: {
		Metadata{Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5},
		cosineSum(0.5, -0.5),
	},
	TypeHamming: {
		Metadata{Name: "Hamming", ENBW: 1.36, HighestSidelobe: -42.7, CoherentGain: 0.54},
		cosineSum(0.54, -0.46),
	},
	TypeBlackman: {
		Metadata{Name: "Blackman", ENBW: 1.73, HighestSidelobe: -58.1, CoherentGain: 0.42},
		cosineSum(0.42, -0.5, 0.08),
	},
	TypeTriangle: {
		Metadata{Name: "Triangle", ENBW: 1.33, HighestSidelobe: -26.5, CoherentGain: 0.5},
		func(x float64) float64 { return 1 - math.Abs(2*x-1) },
	},
	TypeWelch: {
		Metadata{Name: "Welch", ENBW: 1.2, HighestSidelobe: -21.3, CoherentGain: 2.0 / 3},
		func(x float64) float64 { d := x - 0.5; return 1 - 4*d*d },
	},
}

func cosineSum(coeffs ...float64) func(float64) float64 {
	return func(x float64) float64 {
		sum := 0.0
		for k, c := range coeffs {
			sum += c * math.Cos(2*math.Pi*float64(k)*x)
		}
		return sum
	}
}

// Types lists every taper in declaration order.
func Types() []Type {
	out := make([]Type, len(shapes))
	for i := range shapes {
		out[i] = Type(i)
	}
	return out
}

func (t Type) valid() bool { return t >= 0 && int(t) < len(shapes) }

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic divides by the length instead of length-1, the framing used
// ahead of an FFT.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns taper coefficients of the given length. Unknown types
// yield a rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	eval := shapes[TypeRectangular].eval
	if t.valid() {
		eval = shapes[t].eval
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	out := make([]float64, length)
	for i := range out {
		x := 0.0
		if den > 0 {
			x = float64(i) / den
		}
		out[i] = eval(x)
	}
	return out
}

// Apply tapers buf in place.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// ApplyCoefficientsInPlace multiplies a block by precomputed coefficients,
// so a caller tapering every bar generates the window once.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// Info returns the metadata of a taper, or the zero value for unknown types.
func Info(t Type) Metadata {
	if !t.valid() {
		return Metadata{}
	}
	return shapes[t].meta
}

// String returns the lower-case taper name.
func (t Type) String() string {
	if !t.valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return strings.ToLower(shapes[t].meta.Name)
}

// ParseType maps a name such as "hann" to its Type. The empty string
// selects TypeRectangular.
func ParseType(name string) (Type, error) {
	if name == "" {
		return TypeRectangular, nil
	}
	for _, t := range Types() {
		if strings.EqualFold(shapes[t].meta.Name, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownType, name)
}

// EquivalentNoiseBandwidth measures the ENBW in bins of a coefficient set.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	var sum, sumSq float64
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}
	if sum == 0 {
		return 0, errZeroCoherentGain
	}
	return float64(len(coeffs)) * sumSq / (sum * sum), nil
}
