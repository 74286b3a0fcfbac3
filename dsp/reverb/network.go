package reverb

import "math"

// network is one channel of the Moorer topology: parallel damped combs
// summed into a serial allpass cascade, plus an optional early-reflection
// stage tapped off the same input.
type network struct {
	combs     [numCombs]comb
	allpasses [numAllpasses]allpass
	early     *earlyReflections
	headroom  int // detune range reserved in every delay line
}

// newNetwork builds one channel at the given sample rate. The 44.1 kHz
// tuning lengths scale linearly so delay times stay constant; every line
// reserves the scaled stereo spread as tap headroom.
func newNetwork(sampleRate int, withEarly bool) (*network, error) {
	scale := float64(sampleRate) / tuningSampleRate
	headroom := scaledLength(stereoSpread, scale)

	n := &network{headroom: headroom}

	for i, base := range combTuning {
		c, err := newComb(scaledLength(base, scale), headroom)
		if err != nil {
			return nil, err
		}
		n.combs[i] = c
	}

	for i, base := range allpassTuning {
		a, err := newAllpass(scaledLength(base, scale), headroom)
		if err != nil {
			return nil, err
		}
		n.allpasses[i] = a
	}

	if withEarly {
		e, err := newEarlyReflections(sampleRate)
		if err != nil {
			return nil, err
		}
		n.early = e
	}

	return n, nil
}

func scaledLength(base int, scale float64) int {
	length := int(math.Round(float64(base) * scale))
	if length < 1 {
		length = 1
	}
	return length
}

// setDetune offsets every comb and allpass tap; used by the right channel
// to spread the stereo image. The offset is clamped to the reserved
// headroom inside each filter.
func (n *network) setDetune(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n.headroom {
		offset = n.headroom
	}
	for i := range n.combs {
		n.combs[i].setDetune(offset)
	}
	for i := range n.allpasses {
		n.allpasses[i].setDetune(offset)
	}
}

// process runs one input sample through the network and returns the wet
// sample. The early stage, when present, is summed into the diffused tail.
func (n *network) process(input float64) float64 {
	var sum float64
	for i := range n.combs {
		sum += n.combs[i].process(input)
	}
	for i := range n.allpasses {
		sum = n.allpasses[i].process(sum)
	}

	if n.early != nil {
		sum += n.early.process(input)
	}
	return sum
}

func (n *network) reset() {
	for i := range n.combs {
		n.combs[i].reset()
	}
	for i := range n.allpasses {
		n.allpasses[i].reset()
	}
	if n.early != nil {
		n.early.reset()
	}
}
