package spectrum

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/internal/testutil"
)

func BenchmarkGoertzel_ProcessBlock(b *testing.B) {
	sizes := []int{48, 96, 256, 1024}
	for _, size := range sizes {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			g, _ := NewGoertzel(20)
			sig := testutil.RandomWalk(1, 100, 1, size)

			b.SetBytes(int64(size * 8))
			b.ResetTimer()

			for range b.N {
				g.ProcessBlock(sig)
			}
		})
	}
}

func BenchmarkBank_Analyze(b *testing.B) {
	periods := make([]float64, 0, 39)
	for p := 10; p <= 48; p++ {
		periods = append(periods, float64(p))
	}
	bank, _ := NewBank(periods)
	sig := testutil.RandomWalk(1, 100, 1, 96)
	dst := make([]float64, len(periods))

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		dst = bank.Analyze(dst, sig)
	}
}

func BenchmarkPeriodogram(b *testing.B) {
	sig := testutil.RandomWalk(1, 100, 1, 512)
	band := core.Band{Min: 6, Max: 50}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, _ = Periodogram(sig, band)
	}
}
