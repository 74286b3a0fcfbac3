package reverb

import "github.com/cwbudde/algo-reverb/dsp/delay"

// allpass is a delay-based diffuser with a fixed feedback/feedforward gain.
// It smears discrete echoes into a dense tail while leaving the overall
// magnitude response close to flat.
type allpass struct {
	line *delay.Line
	base int
	tap  int
	gain float64
}

func newAllpass(base, headroom int) (allpass, error) {
	line, err := delay.New(base + headroom)
	if err != nil {
		return allpass{}, err
	}
	return allpass{line: line, base: base, tap: base, gain: allpassGain}, nil
}

func (a *allpass) setDetune(offset int) {
	tap := a.base + offset
	if tap > a.line.Len() {
		tap = a.line.Len()
	}
	if tap < 1 {
		tap = 1
	}
	a.tap = tap
}

func (a *allpass) process(input float64) float64 {
	d := a.line.Read(a.tap)
	a.line.Write(input + d*a.gain)
	return -a.gain*input + d
}

func (a *allpass) reset() {
	a.line.Reset()
}
