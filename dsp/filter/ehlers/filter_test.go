package ehlers

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-cycle/internal/testutil"
)

func mustHighPass(t *testing.T, length float64, poles Poles) *HighPass {
	t.Helper()
	f, err := NewHighPass(length, poles)
	if err != nil {
		t.Fatalf("NewHighPass(%v, %d) error = %v", length, poles, err)
	}
	return f
}

func mustSmoother(t *testing.T, length float64, v SmootherVariant) *SuperSmoother {
	t.Helper()
	f, err := NewSuperSmoother(length, v)
	if err != nil {
		t.Fatalf("NewSuperSmoother(%v, %v) error = %v", length, v, err)
	}
	return f
}

func mustRoofing(t *testing.T, upper, lower float64, opts ...RoofingOption) *Roofing {
	t.Helper()
	f, err := NewRoofing(upper, lower, opts...)
	if err != nil {
		t.Fatalf("NewRoofing(%v, %v) error = %v", upper, lower, err)
	}
	return f
}

func allFilters(t *testing.T) map[string]Filter {
	t.Helper()
	ss3, err := NewSuperSmoother3(10)
	if err != nil {
		t.Fatalf("NewSuperSmoother3() error = %v", err)
	}
	bp, err := NewBandPass(20, 0.3)
	if err != nil {
		t.Fatalf("NewBandPass() error = %v", err)
	}
	bs, err := NewBandStop(20, 0.3)
	if err != nil {
		t.Fatalf("NewBandStop() error = %v", err)
	}

	return map[string]Filter{
		"highpass1":      mustHighPass(t, 48, OnePole),
		"highpass2":      mustHighPass(t, 48, TwoPole),
		"smootherDirect": mustSmoother(t, 10, SmootherDirect),
		"smootherAvg":    mustSmoother(t, 10, SmootherAveraged),
		"smoother3":      ss3,
		"roofing":        mustRoofing(t, 48, 10),
		"bandpass":       bp,
		"bandstop":       bs,
	}
}

func TestConstructorValidation(t *testing.T) {
	if _, err := NewHighPass(1, TwoPole); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("length 1: err = %v, want ErrInvalidLength", err)
	}
	if _, err := NewHighPass(math.NaN(), OnePole); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("length NaN: err = %v, want ErrInvalidLength", err)
	}
	if _, err := NewHighPass(20, Poles(3)); !errors.Is(err, ErrInvalidPoles) {
		t.Fatalf("poles 3: err = %v, want ErrInvalidPoles", err)
	}
	if _, err := NewSuperSmoother(math.Inf(1), SmootherDirect); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("length +Inf: err = %v, want ErrInvalidLength", err)
	}
	if _, err := NewSuperSmoother(10, SmootherVariant(7)); err == nil {
		t.Fatal("expected error for unknown smoother variant")
	}
	if _, err := NewSuperSmoother3(0.5); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("3-pole length 0.5: err = %v, want ErrInvalidLength", err)
	}
	if _, err := NewRoofing(10, 40); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("roofing upper < lower: err = %v, want ErrInvalidLength", err)
	}
	for _, bw := range []float64{0, -0.1, 1, math.NaN()} {
		if _, err := NewBandPass(20, bw); !errors.Is(err, ErrInvalidBandwidth) {
			t.Fatalf("bandpass bw %v: err = %v, want ErrInvalidBandwidth", bw, err)
		}
		if _, err := NewBandStop(20, bw); !errors.Is(err, ErrInvalidBandwidth) {
			t.Fatalf("bandstop bw %v: err = %v, want ErrInvalidBandwidth", bw, err)
		}
	}
	if _, err := NewDecycler(1.5); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("decycler length 1.5: err = %v, want ErrInvalidLength", err)
	}
}

func TestWarmUpOutputsExactZero(t *testing.T) {
	in := testutil.PricedSine(17, 3, 100, 64)

	for name, f := range allFilters(t) {
		t.Run(name, func(t *testing.T) {
			out := Apply(f, in)
			for i := 0; i < f.Order(); i++ {
				if out[i] != 0 {
					t.Fatalf("bar %d: got %v, want exactly 0", i, out[i])
				}
			}
			if out[f.Order()] == 0 {
				t.Fatalf("bar %d: filter still silent after warm-up", f.Order())
			}
		})
	}
}

func TestDCRejectionIsExact(t *testing.T) {
	for _, c := range []float64{1, 123.456, -7.3, 1e6} {
		filters := []Filter{
			mustHighPass(t, 48, OnePole),
			mustHighPass(t, 48, TwoPole),
			mustRoofing(t, 48, 10),
			mustRoofing(t, 80, 40, WithSmootherVariant(SmootherAveraged)),
		}
		in := testutil.DC(c, 300)
		for i, f := range filters {
			for bar, y := range Apply(f, in) {
				if y != 0 {
					t.Fatalf("dc=%v filter %d bar %d: got %v, want exactly 0", c, i, bar, y)
				}
			}
		}
	}
}

func TestRoofingOnTwentyBarCycle(t *testing.T) {
	f := mustRoofing(t, 80, 40)
	out := Apply(f, testutil.Sine(20, 1, 400))
	testutil.RequireFinite(t, out)

	tail := out[240:]
	up := testutil.UpCrossings(tail)
	if len(up) < 6 {
		t.Fatalf("expected a sustained oscillation, got %d up-crossings", len(up))
	}
	for k := 1; k < len(up); k++ {
		if gap := up[k] - up[k-1]; gap < 19 || gap > 21 {
			t.Fatalf("up-crossing gap %d: got %d bars, want 20 +/- 1", k, gap)
		}
	}

	early := testutil.MaxAbs(out[240:320])
	late := testutil.MaxAbs(out[320:400])
	if early < 0.05 || early > 1 {
		t.Fatalf("amplitude %v outside (0.05, 1)", early)
	}
	if ratio := late / early; ratio < 0.9 || ratio > 1.1 {
		t.Fatalf("amplitude drifted: early=%v late=%v", early, late)
	}
}

func TestSteadyStateMatchesCoefficientGain(t *testing.T) {
	const period = 30.0

	bp, _ := NewBandPass(20, 0.3)
	bs, _ := NewBandStop(20, 0.3)
	hp1 := mustHighPass(t, 48, OnePole)
	hp2 := mustHighPass(t, 48, TwoPole)
	ssd := mustSmoother(t, 10, SmootherDirect)
	ssa := mustSmoother(t, 10, SmootherAveraged)
	dec, _ := NewDecycler(20)

	tests := []struct {
		name string
		f    Filter
		gain float64
	}{
		{"highpass1", hp1, hp1.Coefficients().Gain(period)},
		{"highpass2", hp2, hp2.Coefficients().Gain(period)},
		{"smootherDirect", ssd, ssd.Coefficients().Gain(period)},
		{"smootherAvg", ssa, ssa.Coefficients().Gain(period)},
		{"bandpass", bp, bp.Coefficients().Gain(period)},
		{"bandstop", bs, bs.Coefficients().Gain(period)},
		{"decycler", dec, dec.Coefficients().Gain(period)},
	}

	in := testutil.Sine(period, 1, 900)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Apply(tc.f, in)
			got := testutil.MaxAbs(out[840:])
			if math.Abs(got-tc.gain) > 0.01*math.Max(tc.gain, 0.1) {
				t.Fatalf("steady-state amplitude = %v, want %v", got, tc.gain)
			}
		})
	}
}

func TestSuperSmootherPoles(t *testing.T) {
	for _, length := range []float64{4, 10, 20, 48} {
		want := math.Exp(-sqrt2Approx * math.Pi / length)
		for _, v := range []SmootherVariant{SmootherDirect, SmootherAveraged} {
			c := mustSmoother(t, length, v).Coefficients()
			if got := c.PoleRadius(); math.Abs(got-want) > 1e-9 {
				t.Fatalf("length %v %v: pole radius = %v, want %v", length, v, got, want)
			}
			if got := c.DCGain(); math.Abs(got-1) > 1e-12 {
				t.Fatalf("length %v %v: DC gain = %v, want 1", length, v, got)
			}
			if !c.Stable() {
				t.Fatalf("length %v %v: unstable coefficients", length, v)
			}
		}
		avg := mustSmoother(t, length, SmootherAveraged).Coefficients()
		if got := avg.NyquistGain(); got > 1e-12 {
			t.Fatalf("length %v: averaged Nyquist gain = %v, want 0", length, got)
		}
	}
}

func TestSuperSmoother3(t *testing.T) {
	f, err := NewSuperSmoother3(12)
	if err != nil {
		t.Fatalf("NewSuperSmoother3() error = %v", err)
	}

	resp := f.Response()
	if got := resp.Gain(math.Inf(1)); math.Abs(got-1) > 1e-12 {
		t.Fatalf("DC gain = %v, want 1", got)
	}
	if !resp.Stable() {
		t.Fatal("3-pole response is unstable")
	}
	if got := resp.Order(); got != 3 {
		t.Fatalf("order = %d, want 3", got)
	}

	out := Apply(f, testutil.DC(5, 400))
	if got := out[len(out)-1]; math.Abs(got-5) > 1e-9 {
		t.Fatalf("settled value = %v, want 5", got)
	}
}

func TestHighPassCoefficients(t *testing.T) {
	for _, poles := range []Poles{OnePole, TwoPole} {
		c := mustHighPass(t, 48, poles).Coefficients()
		if got := c.DCGain(); got != 0 {
			t.Fatalf("poles %d: DC gain = %v, want 0", poles, got)
		}
		if got := c.NyquistGain(); math.Abs(got-1) > 1e-12 {
			t.Fatalf("poles %d: Nyquist gain = %v, want 1", poles, got)
		}
	}
}

func TestHighPassAngleClamp(t *testing.T) {
	// 2*pi/2 is far above 0.99 rad, so short lengths share one coefficient.
	a := mustHighPass(t, 2, OnePole).Alpha()
	b := mustHighPass(t, 5, OnePole).Alpha()
	if a != b {
		t.Fatalf("clamped alphas differ: %v vs %v", a, b)
	}
	c := math.Cos(clampHigh)
	if want := (c + math.Sin(clampHigh) - 1) / c; a != want {
		t.Fatalf("alpha = %v, want %v", a, want)
	}
}

func TestBandPassAndStopAreComplementary(t *testing.T) {
	bp, _ := NewBandPass(20, 0.3)
	bs, _ := NewBandStop(20, 0.3)

	if got := bp.Coefficients().Gain(20); math.Abs(got-1) > 1e-9 {
		t.Fatalf("band-pass centre gain = %v, want 1", got)
	}
	if got := bs.Coefficients().Gain(20); got > 1e-6 {
		t.Fatalf("band-stop centre gain = %v, want 0", got)
	}

	for _, p := range []float64{3, 8, 15, 20, 33, 100} {
		sum := bp.Coefficients().Response(p) + bs.Coefficients().Response(p)
		if math.Abs(real(sum)-1) > 1e-12 || math.Abs(imag(sum)) > 1e-12 {
			t.Fatalf("period %v: H_bp + H_bs = %v, want 1", p, sum)
		}
	}
}

func TestBandPassSetLength(t *testing.T) {
	bp, _ := NewBandPass(20, 0.3)
	if err := bp.SetLength(1); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("SetLength(1) error = %v", err)
	}
	if err := bp.SetLength(30); err != nil {
		t.Fatalf("SetLength(30) error = %v", err)
	}
	if got := bp.Coefficients().Gain(30); math.Abs(got-1) > 1e-9 {
		t.Fatalf("retuned centre gain = %v, want 1", got)
	}
}

func TestDecyclerPassesDC(t *testing.T) {
	f, _ := NewDecycler(20)
	for i, y := range Apply(f, testutil.DC(42.5, 100)) {
		if y != 42.5 {
			t.Fatalf("bar %d: got %v, want 42.5", i, y)
		}
	}
}

func TestCausality(t *testing.T) {
	const cut = 150

	a := testutil.RandomWalk(7, 100, 1, 300)
	b := append([]float64(nil), a...)
	for i := cut; i < len(b); i++ {
		b[i] = -b[i] * 3
	}

	for name, f := range allFilters(t) {
		t.Run(name, func(t *testing.T) {
			outA := Apply(f, a)
			f.Reset()
			outB := Apply(f, b)
			testutil.RequireIdentical(t, outA[:cut], outB[:cut])
		})
	}
}

func TestResetIsDeterministic(t *testing.T) {
	in := testutil.DeterministicNoise(3, 1, 256)

	for name, f := range allFilters(t) {
		t.Run(name, func(t *testing.T) {
			first := Apply(f, in)
			f.Reset()
			second := Apply(f, in)
			testutil.RequireIdentical(t, first, second)
			testutil.RequireFinite(t, first)
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	f := mustSmoother(t, 10, SmootherAveraged)
	in := testutil.Sine(23, 1, 200)

	for _, x := range in[:96] {
		f.ProcessSample(x)
	}
	snap := f.State()
	if snap.Bars() != 96 {
		t.Fatalf("Bars() = %d, want 96", snap.Bars())
	}
	if snap.Input(1) != in[95] || snap.Input(2) != in[94] {
		t.Fatalf("input history = (%v, %v), want (%v, %v)", snap.Input(1), snap.Input(2), in[95], in[94])
	}
	if snap.Input(3) != 0 || snap.Output(0) != 0 {
		t.Fatal("out-of-range history should read as zero")
	}

	want := make([]float64, 0, 104)
	for _, x := range in[96:] {
		want = append(want, f.ProcessSample(x))
	}

	f.SetState(snap)
	got := make([]float64, 0, 104)
	for _, x := range in[96:] {
		got = append(got, f.ProcessSample(x))
	}

	testutil.RequireIdentical(t, got, want)
}

func TestProcessBlockMatchesSample(t *testing.T) {
	in := testutil.Chirp(40, 8, 256)
	a := mustRoofing(t, 48, 10)
	b := mustRoofing(t, 48, 10)

	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = a.ProcessSample(x)
	}

	got := make([]float64, len(in))
	ProcessBlock(b, got, in)
	testutil.RequireIdentical(t, got, want)

	if Apply(b, nil) != nil {
		t.Fatal("Apply(nil) should return nil")
	}
}

func TestRoofingHoldsNonFiniteBars(t *testing.T) {
	in := testutil.Sine(20, 1, 200)
	bad := append([]float64(nil), in...)
	bad[0] = math.NaN()
	bad[50] = math.NaN()
	bad[51] = math.Inf(1)
	bad[120] = math.Inf(-1)

	held := append([]float64(nil), in...)
	held[0] = 0
	held[50] = in[49]
	held[51] = in[49]
	held[120] = in[119]

	got := Apply(mustRoofing(t, 48, 10), bad)
	testutil.RequireFinite(t, got)
	testutil.RequireIdentical(t, got, Apply(mustRoofing(t, 48, 10), held))

	f := mustRoofing(t, 48, 10)
	f.ProcessSample(5)
	f.Reset()
	if y := f.ProcessSample(math.NaN()); y != 0 {
		t.Fatalf("NaN after Reset = %v, want 0", y)
	}
}

func TestProcessBlockEmpty(t *testing.T) {
	for name, f := range allFilters(t) {
		t.Run(name, func(t *testing.T) {
			ProcessBlock(f, nil, nil)
			ProcessBlock(f, []float64{7}, []float64{})
		})
	}
}

func BenchmarkRoofing(b *testing.B) {
	f, _ := NewRoofing(48, 10)
	in := testutil.RandomWalk(1, 100, 1, 4096)
	out := make([]float64, len(in))

	b.ResetTimer()
	for b.Loop() {
		ProcessBlock(f, out, in)
	}
}
