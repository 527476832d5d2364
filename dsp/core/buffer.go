package core

// Zero clears buf, used when a stateful stage is reset.
func Zero(buf []float64) {
	clear(buf)
}
