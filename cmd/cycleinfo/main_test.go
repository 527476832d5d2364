package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-cycle/internal/testutil"
	"github.com/cwbudde/algo-cycle/series"
)

func writeBars(t *testing.T, n int) string {
	t.Helper()

	bars := make([]series.Bar, n)
	for i, x := range testutil.PricedSine(20, 3, 100, n) {
		bars[i] = series.Bar{Open: x, High: x + 0.5, Low: x - 0.5, Close: x, Volume: 1000}
	}

	var buf bytes.Buffer
	require.NoError(t, series.WriteBarsCSV(&buf, bars))

	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"cycleinfo", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	path := writeBars(t, 300)

	out, err := run(t, "run", "--bars", path, "--estimator", "phase-accumulation", "--precision", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 301)
	assert.Equal(t, "price,filtered,inPhase,quadrature,period,dominantCycle,window,stochastic", lines[0])

	last := strings.Split(lines[300], ",")
	assert.Equal(t, "20", last[5], "dominant cycle of a 20-bar sine")
}

func TestRunCommandWithConfig(t *testing.T) {
	path := writeBars(t, 200)
	cfgPath := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
estimator:
  kind: dft
indicator:
  name: none
`), 0o600))

	out, err := run(t, "run", "--bars", path, "--config", cfgPath, "--trigger", "--indicator", "cci")
	require.NoError(t, err)
	header := strings.SplitN(out, "\n", 2)[0]
	assert.Equal(t, "price,filtered,inPhase,quadrature,period,dominantCycle,window,cci,trigger", header)
}

func TestRunCommandErrors(t *testing.T) {
	_, err := run(t, "run", "--bars", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = run(t, "run", "--bars", writeBars(t, 50), "--estimator", "mesa")
	assert.Error(t, err)

	_, err = run(t, "--log-level", "loud", "run", "--bars", writeBars(t, 50))
	assert.Error(t, err)
}

func TestScanCommand(t *testing.T) {
	out, err := run(t, "scan", "--bars", writeBars(t, 400))
	require.NoError(t, err)

	assert.Contains(t, out, "Period")
	assert.Contains(t, out, "dominant cycle: 20 bars")
	assert.Contains(t, out, "zero-crossing period:")

	_, err = run(t, "scan", "--bars", writeBars(t, 20))
	assert.Error(t, err, "too short for the band")
}

func TestResponseCommand(t *testing.T) {
	out, err := run(t, "response", "--filter", "bandpass", "--length", "20", "--from", "20", "--to", "20", "--steps", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	fields := strings.Fields(lines[2])
	assert.Equal(t, []string{"20.00", "1.0000", "0.00", "0.0"}, fields)
	assert.True(t, strings.HasPrefix(lines[3], "stable: true, pole radius 0."), lines[3])

	for _, name := range filterNames() {
		_, err := run(t, "response", "--filter", name)
		assert.NoError(t, err, name)
	}

	_, err = run(t, "response", "--filter", "kalman")
	assert.Error(t, err)
	_, err = run(t, "response", "--from", "1")
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "homodyne")
	assert.Contains(t, out, "stochastic")
	assert.Contains(t, out, "hann")
	assert.Contains(t, out, "roofing")
	assert.Contains(t, out, "typical")
}

func TestLogPeriods(t *testing.T) {
	p, err := logPeriods(4, 64, 5)
	require.NoError(t, err)
	require.Len(t, p, 5)
	assert.InDelta(t, 8, p[1], 1e-9)
	assert.InDelta(t, 16, p[2], 1e-9)
	assert.Equal(t, 64.0, p[4])
}
