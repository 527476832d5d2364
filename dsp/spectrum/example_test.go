package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cycle/dsp/core"
	"github.com/cwbudde/algo-cycle/dsp/spectrum"
)

func ExamplePower() {
	bins := []complex128{1 + 0i, 0 + 2i, -1 + 1i}
	fmt.Println(spectrum.Power(bins))
	// Output:
	// [1 4 2]
}

func ExamplePeriodogram() {
	block := make([]float64, 200)
	for i := range block {
		block[i] = 50 + math.Sin(2*math.Pi*float64(i)/25)
	}

	s, err := spectrum.Periodogram(block, core.Band{Min: 10, Max: 48})
	if err != nil {
		panic(err)
	}
	fmt.Printf("dominant cycle: %.0f bars\n", s.Stats().PeakPeriod)
	// Output:
	// dominant cycle: 25 bars
}
