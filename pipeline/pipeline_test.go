package pipeline

import (
	"bytes"
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-cycle/dsp/cycle"
	"github.com/cwbudde/algo-cycle/dsp/quadrature"
	"github.com/cwbudde/algo-cycle/internal/config"
	"github.com/cwbudde/algo-cycle/internal/testutil"
	"github.com/cwbudde/algo-cycle/series"
)

func TestRunDefaultColumns(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	prices := testutil.PricedSine(20, 5, 100, 400)
	res, err := p.RunValues(prices)
	require.NoError(t, err)

	assert.Equal(t, []string{
		KeyPrice, KeyFiltered, KeyInPhase, KeyQuadrature,
		KeyPeriod, KeyDominantCycle, KeyWindow, "stochastic",
	}, res.Set.Keys())
	assert.Equal(t, len(prices), res.Set.Len())

	price, ok := res.Set.Get(KeyPrice)
	require.True(t, ok)
	assert.Equal(t, prices, price.Values())

	period, _ := res.Set.Get(KeyPeriod)
	dominant, _ := res.Set.Get(KeyDominantCycle)
	for i := range period.Len() {
		v := period.At(i)
		assert.GreaterOrEqual(t, v, 6.0)
		assert.LessOrEqual(t, v, 50.0)
		assert.Equal(t, math.Round(v), dominant.At(i))
	}
	assert.InDelta(t, 20, period.Last(), 1)

	window, _ := res.Set.Get(KeyWindow)
	assert.Equal(t, math.Ceil(period.Last()), window.Last())

	assert.InDelta(t, 20, res.GlobalCycle, 1)
	assert.InDelta(t, 20, res.Spectrum.PeakPeriod, 1)
	assert.Equal(t, len(prices), res.Filtered.Length)
	assert.InDelta(t, 20, res.Filtered.CrossingPeriod(), 1)
}

func TestRunMatchesStandaloneStages(t *testing.T) {
	p, err := New(WithEstimator(cycle.KindPhaseAccumulation), WithIndicator(""))
	require.NoError(t, err)

	prices := testutil.PricedSine(25, 3, 50, 300)
	res, err := p.RunValues(prices)
	require.NoError(t, err)
	assert.NotContains(t, res.Set.Keys(), KeyWindow)

	est, err := cycle.NewPhaseAccumulation()
	require.NoError(t, err)
	filtered, _ := res.Set.Get(KeyFiltered)
	period, _ := res.Set.Get(KeyPeriod)
	for i, x := range filtered.Values() {
		require.Equal(t, est.Next(x), period.At(i), "bar %d", i)
	}
}

func TestRunBars(t *testing.T) {
	bars := make([]series.Bar, 200)
	for i, x := range testutil.PricedSine(16, 2, 30, len(bars)) {
		bars[i] = series.Bar{Open: x, High: x + 1, Low: x - 1, Close: x}
	}

	p, err := New(WithPriceField(series.High), WithIndicator("rsi"))
	require.NoError(t, err)

	res, err := p.Run(bars)
	require.NoError(t, err)

	price, _ := res.Set.Get(KeyPrice)
	assert.Equal(t, bars[10].High, price.At(10))
	_, ok := res.Set.Get("rsi")
	assert.True(t, ok)
}

func TestTrigger(t *testing.T) {
	p, err := New(WithTrigger(4, talib.SMA), WithIndicator("cci"))
	require.NoError(t, err)

	res, err := p.RunValues(testutil.PricedSine(20, 5, 100, 200))
	require.NoError(t, err)

	osc, ok := res.Set.Get("cci")
	require.True(t, ok)
	trig, ok := res.Set.Get(KeyTrigger)
	require.True(t, ok)

	for i := 3; i < osc.Len(); i++ {
		want := (osc.At(i) + osc.At(i-1) + osc.At(i-2) + osc.At(i-3)) / 4
		require.InDelta(t, want, trig.At(i), 1e-9, "bar %d", i)
	}

	// Shorter than the average: all zero.
	short, err := p.RunValues([]float64{1, 2})
	require.NoError(t, err)
	trig, _ = short.Set.Get(KeyTrigger)
	assert.Equal(t, []float64{0, 0}, trig.Values())
}

func TestTriggerShortSeriesEveryAverage(t *testing.T) {
	for name, avg := range averages {
		for length := 2; length <= 5; length++ {
			p, err := New(WithTrigger(length, avg), WithIndicator("rsi"))
			require.NoError(t, err)

			lookback := averageLookback(avg, length)
			for bars := 1; bars <= lookback+3; bars++ {
				var res *Result
				require.NotPanics(t, func() {
					res, err = p.RunValues(testutil.PricedSine(20, 5, 100, bars))
				}, "%s length %d bars %d", name, length, bars)
				require.NoError(t, err)

				trig, ok := res.Set.Get(KeyTrigger)
				require.True(t, ok)
				require.Equal(t, bars, trig.Len())
				for i := range min(bars, lookback) {
					assert.Zero(t, trig.At(i), "%s length %d bars %d bar %d", name, length, bars, i)
				}
			}
		}
	}
}

func TestShortSeriesSkipsSummary(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	res, err := p.RunValues([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Zero(t, res.GlobalCycle)
	assert.Equal(t, 3, res.Set.Len())
}

func TestNewRejectsInvalidStages(t *testing.T) {
	tests := map[string][]Option{
		"roofing":    {WithRoofing(10, 40)},
		"estimator":  {WithEstimator(cycle.Kind(42))},
		"band":       {WithEstimator(cycle.KindDFT, cycle.WithBand(30, 10))},
		"indicator":  {WithIndicator("macd")},
		"frame":      {WithFrame(-1, 0)},
		"smoothing":  {WithSmoothing(1)},
		"trigger":    {WithTrigger(1, talib.SMA)},
		"no frame":   {WithIndicator(""), WithTrigger(3, talib.SMA)},
		"quadrature": {WithQuadrature(quadrature.Variant(9))},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(opts...)
			assert.Error(t, err)
		})
	}

	p, err := New()
	require.NoError(t, err)
	_, err = p.RunValues(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	p, err := New(WithLogger(zap.New(core)))
	require.NoError(t, err)
	_, err = p.RunValues(testutil.PricedSine(20, 1, 10, 300))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("pipeline configured").Len())
	runs := logs.FilterMessage("pipeline run").All()
	require.Len(t, runs, 1)
	assert.Equal(t, int64(300), runs[0].ContextMap()["bars"])
}

func TestNonFinitePricesStayContained(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, err := New(WithLogger(zap.New(core)), WithTrigger(3, talib.EMA))
	require.NoError(t, err)

	prices := testutil.PricedSine(20, 5, 100, 400)
	prices[150] = math.NaN()
	prices[151] = math.Inf(1)

	res, err := p.RunValues(prices)
	require.NoError(t, err)

	for _, key := range res.Set.Keys() {
		if key == KeyPrice {
			continue
		}
		col, _ := res.Set.Get(key)
		testutil.RequireFinite(t, col.Values())
	}
	period, _ := res.Set.Get(KeyPeriod)
	assert.InDelta(t, 20, period.Last(), 1)

	warns := logs.FilterMessage("non-finite prices held at the previous bar").All()
	require.Len(t, warns, 1)
	assert.Equal(t, int64(2), warns[0].ContextMap()["bars"])

	var buf bytes.Buffer
	require.NotPanics(t, func() {
		require.NoError(t, res.Set.WriteCSV(&buf, 2))
	})
	assert.Contains(t, buf.String(), "NaN")
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
price: median
estimator:
  kind: comb
  minPeriod: 10
  maxPeriod: 40
indicator:
  name: cg
  smoothing: 0
trigger:
  enabled: true
  average: ema
`))
	require.NoError(t, err)

	p, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, cycle.KindComb, p.Estimator())
	assert.Equal(t, "cg", p.Indicator())

	res, err := p.RunValues(testutil.PricedSine(24, 2, 10, 300))
	require.NoError(t, err)
	assert.Contains(t, res.Set.Keys(), KeyTrigger)

	period, _ := res.Set.Get(KeyPeriod)
	for _, v := range period.Values() {
		require.GreaterOrEqual(t, v, 10.0)
		require.LessOrEqual(t, v, 40.0)
	}

	none, err := config.Parse([]byte("indicator: {name: none}"))
	require.NoError(t, err)
	p, err = FromConfig(none)
	require.NoError(t, err)
	assert.Empty(t, p.Indicator())
}

func TestParseAverage(t *testing.T) {
	avg, err := ParseAverage("EMA")
	require.NoError(t, err)
	assert.Equal(t, talib.EMA, avg)

	_, err = ParseAverage("hull")
	assert.Error(t, err)
}
