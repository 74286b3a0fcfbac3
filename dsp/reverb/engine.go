package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

const (
	defaultDamping  = 0.5
	defaultRoomSize = 0.5
	defaultWet      = 1.0 / 3.0
	defaultWidth    = 0.5
)

// Engine is the public reverb facade. It owns one network per channel and
// exposes clamped parameter setters that may be called from any goroutine
// while audio is being processed on another.
//
// The processing methods allocate nothing and take no locks. All delay
// storage is released with the Engine itself; there is no explicit close.
type Engine struct {
	sampleRate int
	stereo     bool
	withEarly  bool

	params paramStore

	left  *network
	right *network // nil in mono operation

	// Coefficient cache owned by the audio goroutine, refreshed at sample
	// boundaries whenever the parameter epoch moves.
	seenEpoch uint64
	dry       float64
	wetGain   float64
	wet1      float64
	wet2      float64
	inputGain float64
}

// Option configures an Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	stereo bool
	early  bool
}

// WithStereo selects stereo (default) or mono operation. A mono engine
// runs a single network and ignores the width parameter.
func WithStereo(stereo bool) Option {
	return func(cfg *engineConfig) {
		cfg.stereo = stereo
	}
}

// WithEarlyReflections enables the Moorer early-reflection stage.
// It is off by default.
func WithEarlyReflections(enabled bool) Option {
	return func(cfg *engineConfig) {
		cfg.early = enabled
	}
}

// New creates an engine for the given sample rate in Hz.
func New(sampleRate int, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("reverb: sample rate must be > 0: %d", sampleRate)
	}

	cfg := engineConfig{stereo: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	e := &Engine{
		sampleRate: sampleRate,
		stereo:     cfg.stereo,
		withEarly:  cfg.early,
	}

	err := e.rebuild()
	if err != nil {
		return nil, err
	}

	e.params.setDamping(defaultDamping)
	e.params.setRoomSize(defaultRoomSize)
	e.params.setWet(defaultWet)
	e.params.setWidth(defaultWidth)
	e.params.setFrozen(false)
	e.refresh()

	return e, nil
}

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Stereo reports whether the engine runs a detuned network pair.
func (e *Engine) Stereo() bool { return e.stereo }

// SetSampleRate rebuilds the delay lines for a new sample rate. Unlike the
// setters this allocates and must not race the processing methods.
func (e *Engine) SetSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("reverb: sample rate must be > 0: %d", sampleRate)
	}

	e.sampleRate = sampleRate

	err := e.rebuild()
	if err != nil {
		return err
	}

	e.seenEpoch = e.params.epoch.Load()
	e.apply(e.params.snapshot())

	return nil
}

// SetDamping sets high-frequency absorption of the tail, clamped to [0,1].
func (e *Engine) SetDamping(v float64) {
	e.params.setDamping(core.ClampUnit(v))
}

// SetRoomSize sets the simulated room size, clamped to [0,1]. Larger rooms
// decay more slowly; all combs share the same -60 dB decay time.
func (e *Engine) SetRoomSize(v float64) {
	e.params.setRoomSize(core.ClampUnit(v))
}

// SetWet sets the wet/dry mix, clamped to [0,1]. Zero is a dry pass-through.
func (e *Engine) SetWet(v float64) {
	e.params.setWet(core.ClampUnit(v))
}

// SetWidth sets the stereo spread, clamped to [0,1]. Width detunes the
// right channel's delay taps; zero collapses both tails to identical
// timing. Ignored in mono operation.
func (e *Engine) SetWidth(v float64) {
	e.params.setWidth(core.ClampUnit(v))
}

// SetFrozen toggles freeze mode. While frozen the comb feedback is pinned
// just below unity, damping is lifted and no new input enters the tail, so
// the current reverberation sustains indefinitely. Room size and damping
// changes are stored but only take effect after unfreezing.
func (e *Engine) SetFrozen(frozen bool) {
	e.params.setFrozen(frozen)
}

// Damping returns the damping parameter.
func (e *Engine) Damping() float64 { return loadFloat(&e.params.damping) }

// RoomSize returns the room-size parameter.
func (e *Engine) RoomSize() float64 { return loadFloat(&e.params.roomSize) }

// Wet returns the wet/dry mix parameter.
func (e *Engine) Wet() float64 { return loadFloat(&e.params.wet) }

// Width returns the stereo width parameter.
func (e *Engine) Width() float64 { return loadFloat(&e.params.width) }

// Frozen reports whether freeze mode is active.
func (e *Engine) Frozen() bool { return e.params.frozen.Load() }

// Reset clears all delay and filter state without touching parameters.
func (e *Engine) Reset() {
	e.left.reset()
	if e.right != nil {
		e.right.reset()
	}
}

// ProcessSample processes one mono sample.
func (e *Engine) ProcessSample(input float64) float64 {
	e.refresh()

	wet := e.left.process(input * e.inputGain)
	return input*e.dry + wet*e.wetGain
}

// ProcessStereoSample processes one stereo frame. Both networks are fed the
// mono sum; the width cross-mix blends their detuned tails.
func (e *Engine) ProcessStereoSample(left, right float64) (float64, float64) {
	e.refresh()

	in := (left + right) * e.inputGain

	wetL := e.left.process(in)
	wetR := wetL
	if e.right != nil {
		wetR = e.right.process(in)
	}

	outL := left*e.dry + wetL*e.wet1 + wetR*e.wet2
	outR := right*e.dry + wetR*e.wet1 + wetL*e.wet2
	return outL, outR
}

// ProcessBlock applies the reverb to buf in place (mono).
func (e *Engine) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = e.ProcessSample(buf[i])
	}
}

// ProcessStereoBlock applies the reverb to a stereo pair in place.
// The channels are processed up to the shorter length.
func (e *Engine) ProcessStereoBlock(left, right []float64) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = e.ProcessStereoSample(left[i], right[i])
	}
}

func (e *Engine) rebuild() error {
	left, err := newNetwork(e.sampleRate, e.withEarly)
	if err != nil {
		return err
	}
	e.left = left

	e.right = nil
	if e.stereo {
		right, err := newNetwork(e.sampleRate, e.withEarly)
		if err != nil {
			return err
		}
		e.right = right
	}

	return nil
}

// refresh re-derives filter coefficients when a parameter changed. It runs
// on the audio goroutine between samples, so an update is never observed
// mid-sample.
func (e *Engine) refresh() {
	epoch := e.params.epoch.Load()
	if epoch == e.seenEpoch {
		return
	}
	e.seenEpoch = epoch
	e.apply(e.params.snapshot())
}

func (e *Engine) apply(s paramSnapshot) {
	// Detune first: feedback below depends on the final tap lengths.
	if e.right != nil {
		e.right.setDetune(int(math.Round(s.width * float64(e.right.headroom))))
	}

	decay := minDecaySeconds + s.roomSize*(maxDecaySeconds-minDecaySeconds)
	damp := s.damping * dampScale

	inputGain := inputScale
	if s.frozen {
		damp = 0
		inputGain = 0
	}

	e.applyCombs(e.left, s.frozen, decay, damp)
	if e.right != nil {
		e.applyCombs(e.right, s.frozen, decay, damp)
	}

	e.inputGain = inputGain
	e.dry = 1 - s.wet
	e.wetGain = s.wet * wetScale
	e.wet1 = e.wetGain * (s.width/2 + 0.5)
	e.wet2 = e.wetGain * ((1 - s.width) / 2)
}

// applyCombs derives per-comb feedback so every comb reaches -60 dB after
// the same decay time: longer lines get gains closer to one.
func (e *Engine) applyCombs(n *network, frozen bool, decay, damp float64) {
	for i := range n.combs {
		c := &n.combs[i]

		if frozen {
			c.feedback = freezeFeedback
		} else {
			seconds := float64(c.delaySamples()) / float64(e.sampleRate)
			fb := math.Pow(10, -3*seconds/decay)
			if fb > maxFeedback {
				fb = maxFeedback
			}
			c.feedback = fb
		}

		c.setDamp(damp)
	}
}
