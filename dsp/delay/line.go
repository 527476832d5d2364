// Package delay provides a fixed-capacity ring of the most recent bars.
package delay

import "fmt"

// Line is a circular history of the most recent samples. Read(0) is the
// newest sample; slots that were never written read as zero.
type Line struct {
	buffer   []float64
	writePos int
	filled   int
}

// New returns a delay line holding up to size samples.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// MustNew is like New but panics on an invalid size. It is meant for
// package-internal sizes derived from already validated configuration.
func MustNew(size int) *Line {
	d, err := New(size)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the capacity of the line.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Filled returns how many samples have been written, saturating at Len.
func (d *Line) Filled() int {
	return d.filled
}

// Write appends one sample, overwriting the oldest when full.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
	if d.filled < len(d.buffer) {
		d.filled++
	}
}

// Read returns the sample written ago bars before the newest one.
// Out-of-range requests return 0, matching the zero warm-up history.
func (d *Line) Read(ago int) float64 {
	size := len(d.buffer)
	if ago < 0 || ago >= size {
		return 0
	}
	readPos := d.writePos - 1 - ago
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Recent copies the newest n samples into dst in chronological order
// (oldest first) and returns the filled prefix of dst. n is limited by
// Filled and len(dst).
func (d *Line) Recent(dst []float64, n int) []float64 {
	if n > d.filled {
		n = d.filled
	}
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = d.Read(n - 1 - i)
	}
	return dst[:n]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
	d.filled = 0
}
