package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "close", p.Price)
	assert.Equal(t, 48.0, p.Roofing.Upper)
	assert.Equal(t, 10.0, p.Roofing.Lower)
	assert.Equal(t, "homodyne", p.Estimator.Kind)
	assert.Equal(t, "classic", p.Estimator.Quadrature)
	assert.Equal(t, 10.0, p.Estimator.SmoothLength)
	require.NotNil(t, p.Estimator.AverageLength)
	assert.Equal(t, 3, *p.Estimator.AverageLength)
	require.NotNil(t, p.Estimator.FractionalCount)
	assert.True(t, *p.Estimator.FractionalCount)
	assert.Equal(t, 0.1, p.Estimator.Bandwidth)
	assert.Equal(t, 0.995, p.Estimator.Decay)
	assert.Equal(t, "rectangular", p.Estimator.Taper)
	assert.Equal(t, "stochastic", p.Indicator.Name)
	assert.Equal(t, 50, p.Indicator.Capacity)
	assert.Nil(t, p.Indicator.Smoothing)
	assert.False(t, p.Trigger.Enabled)
	assert.Equal(t, 3, p.Trigger.Length)
	assert.Equal(t, "sma", p.Trigger.Average)
	require.NotNil(t, p.Precision)
	assert.Equal(t, 4, *p.Precision)

	assert.NoError(t, p.Validate())
}

func TestParseOverrides(t *testing.T) {
	p, err := Parse([]byte(`
price: typical
roofing:
  upper: 60
  lower: 8
estimator:
  kind: dft
  minPeriod: 8
  maxPeriod: 40
  taper: hann
  averageLength: 0
  fractionalCount: false
indicator:
  name: rsi
  fraction: 0.75
  smoothing: 0
trigger:
  enabled: true
  length: 5
  average: ema
precision: 0
`))
	require.NoError(t, err)

	assert.Equal(t, "typical", p.Price)
	assert.Equal(t, 60.0, p.Roofing.Upper)
	assert.Equal(t, "dft", p.Estimator.Kind)
	assert.Equal(t, 40.0, p.Estimator.MaxPeriod)
	assert.Equal(t, "hann", p.Estimator.Taper)
	assert.Equal(t, 0, *p.Estimator.AverageLength, "explicit zero must survive defaults")
	assert.False(t, *p.Estimator.FractionalCount)
	assert.Equal(t, 0.75, p.Indicator.Fraction)
	require.NotNil(t, p.Indicator.Smoothing)
	assert.Equal(t, 0.0, *p.Indicator.Smoothing)
	assert.True(t, p.Trigger.Enabled)
	assert.Equal(t, "ema", p.Trigger.Average)
	assert.Equal(t, 0, *p.Precision)
	// Untouched fields keep their defaults.
	assert.Equal(t, "classic", p.Estimator.Quadrature)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown kind":        "estimator: {kind: mesa}",
		"inverted roofing":    "roofing: {upper: 10, lower: 48}",
		"roofing below 2":     "roofing: {upper: 10, lower: 1}",
		"half band":           "estimator: {minPeriod: 10}",
		"inverted band":       "estimator: {minPeriod: 40, maxPeriod: 10}",
		"average length one":  "estimator: {averageLength: 1}",
		"bandwidth":           "estimator: {bandwidth: 1.5}",
		"decay":               "estimator: {decay: 2}",
		"delta limits count":  "estimator: {deltaLimits: [1]}",
		"delta limits order":  "estimator: {deltaLimits: [30, 2]}",
		"unknown indicator":   "indicator: {name: macd}",
		"smoothing length":    "indicator: {smoothing: 1}",
		"unknown average":     "trigger: {average: hull}",
		"unknown price":       "price: vwap",
		"precision too large": "precision: 20",
		"bad yaml":            "estimator: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("estimator:\n  kind: comb\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "comb", p.Estimator.Kind)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	p.Estimator.Kind = "autocorrelation"

	data, err := p.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
