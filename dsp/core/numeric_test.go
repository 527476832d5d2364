package core

import (
	"errors"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max float64
		want        float64
	}{
		{"inside", 0.5, 0.01, 0.99, 0.5},
		{"below", -1, 0.01, 0.99, 0.01},
		{"above", 3.2, 0.01, 0.99, 0.99},
		{"swapped bounds", 2, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if Finite(v) {
			t.Fatalf("Finite(%v) = true", v)
		}
	}
	if !Finite(-3.5) {
		t.Fatal("Finite(-3.5) = false")
	}
}

func TestDegrees(t *testing.T) {
	if got := Degrees(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Fatalf("Degrees(pi/2) = %v, want 90", got)
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}

	if got := FlushDenormals(1e-3); got != 1e-3 {
		t.Fatalf("FlushDenormals(1e-3) = %v", got)
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if got := LinearPowerToDB(100); math.Abs(got-20) > 1e-12 {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", got)
	}

	if got := LinearPowerToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearPowerToDB(0) = %v, want -Inf", got)
	}

	if got := LinearPowerToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearPowerToDB(-1) = %v, want NaN", got)
	}
}

func TestBandValidate(t *testing.T) {
	tests := []struct {
		name    string
		band    Band
		wantErr bool
	}{
		{"default", DefaultBand(), false},
		{"degenerate single period", Band{Min: 20, Max: 20}, false},
		{"inverted", Band{Min: 50, Max: 6}, true},
		{"below nyquist", Band{Min: 1, Max: 10}, true},
		{"nan", Band{Min: math.NaN(), Max: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.band.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrInvalidBand) {
				t.Fatalf("Validate() error %v does not wrap ErrInvalidBand", err)
			}
		})
	}
}

func TestBandClamp(t *testing.T) {
	b := Band{Min: 6, Max: 50}

	for _, p := range []float64{0, -3, 6, 17.5, 50, 400, math.NaN(), math.Inf(1)} {
		got := b.Clamp(p)
		if !b.Contains(got) {
			t.Fatalf("Clamp(%v) = %v outside band", p, got)
		}
	}
}

func TestBandIntBounds(t *testing.T) {
	lo, hi := Band{Min: 9.5, Max: 48.2}.IntBounds()
	if lo != 10 || hi != 48 {
		t.Fatalf("IntBounds = (%d, %d), want (10, 48)", lo, hi)
	}
}
