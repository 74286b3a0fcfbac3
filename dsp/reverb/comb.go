package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
)

// comb is a feedback comb filter with a one-pole low-pass in its feedback
// path. The low-pass models high-frequency absorption: higher damping
// removes more treble from the decaying tail.
type comb struct {
	line     *delay.Line
	base     int // nominal tap length in samples
	tap      int // current tap length (base plus stereo detune)
	feedback float64
	dampA    float64 // filter pole
	dampB    float64 // 1 - dampA
	store    float64 // one-pole filter state
}

// newComb allocates a comb whose delay line can hold base+headroom samples,
// so the tap can be detuned up to headroom without reallocating.
func newComb(base, headroom int) (comb, error) {
	line, err := delay.New(base + headroom)
	if err != nil {
		return comb{}, err
	}
	return comb{line: line, base: base, tap: base}, nil
}

func (c *comb) setDamp(v float64) {
	c.dampA = v
	c.dampB = 1 - v
}

// setDetune moves the tap to base+offset samples, clamped to capacity.
func (c *comb) setDetune(offset int) {
	tap := c.base + offset
	if tap > c.line.Len() {
		tap = c.line.Len()
	}
	if tap < 1 {
		tap = 1
	}
	c.tap = tap
}

// delaySamples returns the current tap length.
func (c *comb) delaySamples() int {
	return c.tap
}

// process runs one sample through the filter. The forward output is the
// undamped delayed read; damping shapes only the feedback path.
func (c *comb) process(input float64) float64 {
	out := c.line.Read(c.tap)
	c.store = core.FlushDenormals(out*c.dampB + c.store*c.dampA)
	c.line.Write(input + c.store*c.feedback)
	return out
}

func (c *comb) reset() {
	c.line.Reset()
	c.store = 0
}
