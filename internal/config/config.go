// Package config loads the YAML description of a cycle analysis pipeline.
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Pipeline describes one analysis run.
type Pipeline struct {
	Price     string    `yaml:"price" default:"close" validate:"oneof=close open high low median typical weighted"`
	Roofing   Roofing   `yaml:"roofing"`
	Estimator Estimator `yaml:"estimator"`
	Indicator Indicator `yaml:"indicator"`
	Trigger   Trigger   `yaml:"trigger"`
	// Precision is the number of decimals written; -1 disables rounding.
	Precision *int `yaml:"precision" default:"4" validate:"required,gte=-1,lte=12"`
}

// Roofing holds the band-limiting filter cutoffs in bars.
type Roofing struct {
	Upper float64 `yaml:"upper" default:"48" validate:"gtfield=Lower"`
	Lower float64 `yaml:"lower" default:"10" validate:"gte=2"`
}

// Estimator selects and tunes the dominant cycle estimator. Zero period
// bounds select the estimator's default band.
type Estimator struct {
	Kind            string    `yaml:"kind" default:"homodyne" validate:"oneof=homodyne dual-differentiator phase-accumulation autocorrelation dft comb"`
	MinPeriod       float64   `yaml:"minPeriod" validate:"omitempty,gte=2"`
	MaxPeriod       float64   `yaml:"maxPeriod" validate:"omitempty,gtefield=MinPeriod"`
	Quadrature      string    `yaml:"quadrature" default:"classic" validate:"oneof=classic peak-normalized peak"`
	SmoothLength    float64   `yaml:"smoothLength" default:"10" validate:"gte=2"`
	AverageLength   *int      `yaml:"averageLength" default:"3" validate:"required,gte=0,ne=1"`
	WindowLength    int       `yaml:"windowLength" validate:"gte=0"`
	Taper           string    `yaml:"taper" default:"rectangular" validate:"oneof=rectangular hann hamming blackman triangle welch"`
	Bandwidth       float64   `yaml:"bandwidth" default:"0.1" validate:"gt=0,lt=1"`
	Decay           float64   `yaml:"decay" default:"0.995" validate:"gt=0,lte=1"`
	FractionalCount *bool     `yaml:"fractionalCount" default:"true" validate:"required"`
	DeltaLimits     []float64 `yaml:"deltaLimits,omitempty" validate:"omitempty,len=2,dive,gt=0"`
}

// Indicator selects the adaptive oscillator. "none" skips the frame stage.
type Indicator struct {
	Name     string  `yaml:"name" default:"stochastic" validate:"oneof=stochastic rsi cci cg none"`
	Fraction float64 `yaml:"fraction" validate:"gte=0"`
	Capacity int     `yaml:"capacity" default:"50" validate:"gte=1"`
	// Smoothing overrides the preset's SuperSmoother length; 0 disables it.
	Smoothing *float64 `yaml:"smoothing,omitempty" validate:"omitempty,eq=0|gte=2"`
}

// Trigger configures the moving-average trigger line over the oscillator.
type Trigger struct {
	Enabled bool   `yaml:"enabled"`
	Length  int    `yaml:"length" default:"3" validate:"gte=2"`
	Average string `yaml:"average" default:"sma" validate:"oneof=sma ema wma dema tema trima"`
}

// Default returns a pipeline with every default applied.
func Default() (Pipeline, error) {
	var p Pipeline
	if err := defaults.Set(&p); err != nil {
		return Pipeline{}, fmt.Errorf("config: defaults: %w", err)
	}
	return p, nil
}

// Parse decodes YAML, fills unset fields with defaults and validates.
func Parse(data []byte) (Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pipeline{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := defaults.Set(&p); err != nil {
		return Pipeline{}, fmt.Errorf("config: defaults: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Pipeline{}, err
	}
	return p, nil
}

// Load reads and parses a YAML file.
func Load(path string) (Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return Pipeline{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks field constraints.
func (p *Pipeline) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("config: invalid pipeline: %w", err)
	}
	if (p.Estimator.MinPeriod == 0) != (p.Estimator.MaxPeriod == 0) {
		return fmt.Errorf("config: invalid pipeline: minPeriod and maxPeriod must be set together")
	}
	if d := p.Estimator.DeltaLimits; len(d) == 2 && d[0] > d[1] {
		return fmt.Errorf("config: invalid pipeline: delta limits %v not ordered", d)
	}
	return nil
}

// Marshal encodes p as YAML.
func (p Pipeline) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}
