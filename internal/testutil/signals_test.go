package testutil

import (
	"math"
	"testing"
)

func TestSinePeriod(t *testing.T) {
	s := Sine(20, 1, 100)
	if math.Abs(s[5]-1) > 1e-12 {
		t.Fatalf("quarter-period sample = %v, want 1", s[5])
	}

	for i := 0; i+20 < len(s); i++ {
		if math.Abs(s[i]-s[i+20]) > 1e-9 {
			t.Fatalf("sample %d not periodic: %v vs %v", i, s[i], s[i+20])
		}
	}
}

func TestDeterministicNoiseRepeatable(t *testing.T) {
	a := DeterministicNoise(7, 1, 64)
	b := DeterministicNoise(7, 1, 64)
	RequireIdentical(t, a, b)
	RequireWithin(t, a, -1, 1)
}

func TestChirpEndpoints(t *testing.T) {
	c := Chirp(10, 40, 200)
	if len(c) != 200 {
		t.Fatalf("len = %d", len(c))
	}
	RequireWithin(t, c, -1, 1)
}

func TestMaxAbs(t *testing.T) {
	if got := MaxAbs([]float64{0.5, -2, 1}); got != 2 {
		t.Fatalf("MaxAbs = %v, want 2", got)
	}
}

func TestUpCrossings(t *testing.T) {
	got := UpCrossings([]float64{-1, 1, 2, -3, 0, 1})
	if len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Fatalf("UpCrossings = %v, want [1 4]", got)
	}
}
