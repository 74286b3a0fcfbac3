package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/delay"
)

// earlyReflections is a tapped-delay FIR producing the first discrete wall
// echoes of the simulated room. Tap positions are fractional sample counts
// and are read with Hermite interpolation.
type earlyReflections struct {
	line *delay.Line
	taps []float64 // tap delays in samples
	gain []float64
}

func newEarlyReflections(sampleRate int) (*earlyReflections, error) {
	maxSeconds := earlyTapSeconds[len(earlyTapSeconds)-1]
	size := int(math.Ceil(maxSeconds*float64(sampleRate))) + 4

	line, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	e := &earlyReflections{
		line: line,
		taps: make([]float64, len(earlyTapSeconds)),
		gain: make([]float64, len(earlyTapGains)),
	}
	for i, sec := range earlyTapSeconds {
		e.taps[i] = sec * float64(sampleRate)
		e.gain[i] = earlyTapGains[i]
	}
	return e, nil
}

func (e *earlyReflections) process(input float64) float64 {
	e.line.Write(input)

	var sum float64
	for i, tap := range e.taps {
		sum += e.gain[i] * e.line.ReadFractional(tap)
	}
	return sum
}

func (e *earlyReflections) reset() {
	e.line.Reset()
}
