package ehlers

import "github.com/cwbudde/algo-cycle/dsp/core"

// State is the recursive memory of one filter: the last two inputs, the
// last three outputs and the number of bars processed. The output for bar n
// depends only on inputs up to n and outputs before n.
type State struct {
	x [2]float64 // x[0] is the previous input, x[1] the one before
	y [3]float64 // y[0] is the previous output
	n int
}

// Bars returns the number of samples processed since the last reset.
func (s State) Bars() int {
	return s.n
}

// Input returns the input from ago bars back (1 or 2). Missing history reads
// as zero.
func (s State) Input(ago int) float64 {
	if ago < 1 || ago > len(s.x) {
		return 0
	}
	return s.x[ago-1]
}

// Output returns the output from ago bars back (1..3). Missing history reads
// as zero.
func (s State) Output(ago int) float64 {
	if ago < 1 || ago > len(s.y) {
		return 0
	}
	return s.y[ago-1]
}

func (s *State) warm(order int) bool {
	return s.n >= order
}

func (s *State) push(x, y float64) {
	s.x[1] = s.x[0]
	s.x[0] = x
	s.y[2] = s.y[1]
	s.y[1] = s.y[0]
	s.y[0] = core.FlushDenormals(y)
	s.n++
}

func (s *State) reset() {
	*s = State{}
}
