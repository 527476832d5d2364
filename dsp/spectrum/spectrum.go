package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// parts is pooled scratch memory for splitting complex bins into their
// real and imaginary halves.
type parts struct {
	data []float64
}

var partsPool = sync.Pool{
	New: func() any { return &parts{} },
}

// Power returns |X[k]|^2 for each complex bin. In steady state the only
// allocation is the result.
func Power(bins []complex128) []float64 {
	if len(bins) == 0 {
		return nil
	}

	n := len(bins)
	buf := partsPool.Get().(*parts)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}
	re, im := buf.data[:n], buf.data[n:2*n]
	for i, c := range bins {
		re[i], im[i] = real(c), imag(c)
	}

	out := make([]float64, n)
	PowerFromParts(out, re, im)
	partsPool.Put(buf)
	return out
}

// PowerFromParts writes re[k]^2 + im[k]^2 into dst. All three slices must
// have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}
