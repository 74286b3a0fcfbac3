package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/interp"
)

// Line is a circular delay line with a fixed capacity.
//
// The capacity is set at construction and never reallocated, so a Line is
// safe to use on a real-time audio path once created. Write stores one
// sample and advances the write position; Read taps the signal a given
// number of samples behind the write position.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size, which is also the maximum usable delay.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample and advances the write position.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Write(x) followed by Read(1)
// returns x; Read(Len()) returns the oldest retained sample.
//
// A delay outside [0, Len()] is a caller bug; it is clamped into range
// rather than panicking, since reads happen on the audio path.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if delay < 0 {
		delay = 0
	}
	if delay > size {
		delay = size
	}
	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// ReadFractional reads with cubic Hermite interpolation.
// The usable range shrinks by the interpolator margin at both ends.
func (d *Line) ReadFractional(delay float64) float64 {
	size := len(d.buffer)
	if delay < 1 {
		delay = 1
	}
	maxDelay := float64(size - 2)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	xm1 := d.Read(p - 1)
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)
	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
