package frequency

// PeakTracker follows the largest power seen, letting it decay by a fixed
// factor every update so that the normalisation reference adapts when the
// spectrum weakens.
type PeakTracker struct {
	decay float64
	max   float64
}

// NewPeakTracker returns a tracker with the given per-update decay, usually
// just below 1 (0.995 is common).
func NewPeakTracker(decay float64) *PeakTracker {
	return &PeakTracker{decay: decay}
}

// Update decays the running maximum, raises it to the largest of values and
// returns it.
func (p *PeakTracker) Update(values []float64) float64 {
	p.max *= p.decay
	for _, v := range values {
		if v > p.max {
			p.max = v
		}
	}
	return p.max
}

// Max returns the current reference.
func (p *PeakTracker) Max() float64 { return p.max }

// Reset clears the running maximum.
func (p *PeakTracker) Reset() { p.max = 0 }
