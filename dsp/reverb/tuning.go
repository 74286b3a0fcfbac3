package reverb

const (
	numCombs     = 8
	numAllpasses = 4

	// Delay lengths below are calibrated for 44.1 kHz and scaled linearly
	// with the actual sample rate so delay times stay constant.
	tuningSampleRate = 44100.0

	// Offset added to the right channel's delay taps, weighted by the
	// width parameter, to decorrelate the two tails.
	stereoSpread = 23

	allpassGain = 0.5

	// Input attenuation in front of the comb bank; keeps the summed tail
	// in the same ballpark as the dry signal.
	inputScale = 0.015
	wetScale   = 3.0

	dampScale = 0.4

	// Room size maps linearly onto a -60 dB decay time in this range.
	minDecaySeconds = 0.3
	maxDecaySeconds = 8.0

	// Feedback ceiling for normal operation and the pinned feedback used
	// while frozen. Both stay strictly below 1 for bounded energy.
	maxFeedback    = 0.999
	freezeFeedback = 0.999999
)

var combTuning = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}

var allpassTuning = [numAllpasses]int{556, 441, 341, 225}

// Moorer's measured early reflection pattern: tap times in seconds and
// their gains. Tap positions are fractional at most sample rates, so the
// early stage reads its delay line with Hermite interpolation.
var earlyTapSeconds = [...]float64{
	0.0043, 0.0215, 0.0225, 0.0268, 0.0270, 0.0298,
	0.0458, 0.0485, 0.0572, 0.0587, 0.0595, 0.0612,
	0.0707, 0.0708, 0.0726, 0.0741, 0.0753, 0.0797,
}

var earlyTapGains = [...]float64{
	0.841, 0.504, 0.491, 0.379, 0.380, 0.346,
	0.289, 0.272, 0.192, 0.193, 0.217, 0.181,
	0.180, 0.181, 0.176, 0.142, 0.167, 0.134,
}
