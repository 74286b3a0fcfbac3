// Command reverb applies a Moorer-style reverberator to audio files.
//
// Usage:
//
//	reverb [flags] -in dry.wav -out wet.wav
//
// Input may be WAV, AIFF, MP3 or Ogg Vorbis; output is 16-bit WAV. With
// -play the result is sent to the default audio device instead of (or in
// addition to) a file. With -measure no input is needed: the tool runs a
// unit impulse through the engine and prints room acoustic metrics.
//
// Examples:
//
//	reverb -in dry.wav -out wet.wav -room 0.8 -wet 0.4
//	reverb -in take.mp3 -play -damp 0.2
//	reverb -measure -room 0.6 -sr 48000
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cwbudde/algo-vecmath"
	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/reverb"
	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/cwbudde/algo-reverb/internal/audiofile"
	"github.com/cwbudde/algo-reverb/measure/ir"
)

func main() {
	in := flag.String("in", "", "input audio file (wav, aiff, mp3, ogg)")
	out := flag.String("out", "", "output WAV file")
	play := flag.Bool("play", false, "play the result on the default audio device")
	measure := flag.Bool("measure", false, "print impulse response metrics instead of processing a file")

	room := flag.Float64("room", 0.5, "room size [0..1]")
	damp := flag.Float64("damp", 0.5, "high-frequency damping [0..1]")
	wet := flag.Float64("wet", 0.33, "wet/dry mix [0..1]")
	width := flag.Float64("width", 0.5, "stereo width [0..1]")
	freeze := flag.Bool("freeze", false, "freeze the tail (infinite sustain)")
	stereo := flag.Bool("stereo", true, "stereo processing")
	early := flag.Bool("early", false, "enable early reflection stage")

	gain := flag.Float64("gain", 1.0, "output gain (linear)")
	tail := flag.Float64("tail", 3.0, "reverb tail to append in seconds")
	sr := flag.Int("sr", 44100, "sample rate for -measure mode")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: reverb [flags] -in dry.wav -out wet.wav\n\n")
		fmt.Fprintf(os.Stderr, "Applies a Moorer-style reverberator to audio files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  reverb -in dry.wav -out wet.wav -room 0.8 -wet 0.4\n")
		fmt.Fprintf(os.Stderr, "  reverb -in take.mp3 -play -damp 0.2\n")
		fmt.Fprintf(os.Stderr, "  reverb -measure -room 0.6 -sr 48000\n")
	}
	flag.Parse()

	params := engineParams{
		room:   *room,
		damp:   *damp,
		wet:    *wet,
		width:  *width,
		freeze: *freeze,
		stereo: *stereo,
		early:  *early,
	}

	if *measure {
		if err := runMeasure(*sr, *tail, params); err != nil {
			fail(err)
		}
		return
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required (or use -measure)")
		flag.Usage()
		os.Exit(1)
	}

	if *out == "" && !*play {
		fmt.Fprintln(os.Stderr, "error: nothing to do, pass -out and/or -play")
		os.Exit(1)
	}

	clip, err := process(*in, params, *tail, *gain)
	if err != nil {
		fail(err)
	}

	if *out != "" {
		if err := audiofile.EncodeWAV(*out, clip); err != nil {
			fail(err)
		}
		fmt.Printf("wrote %s (%d Hz, %d ch, %.2fs)\n", *out, clip.SampleRate, clip.Channels,
			float64(clip.Frames())/float64(clip.SampleRate))
	}

	if *play {
		if err := playClip(clip); err != nil {
			fail(err)
		}
	}
}

type engineParams struct {
	room   float64
	damp   float64
	wet    float64
	width  float64
	freeze bool
	stereo bool
	early  bool
}

func newEngine(sampleRate int, p engineParams) (*reverb.Engine, error) {
	e, err := reverb.New(sampleRate,
		reverb.WithStereo(p.stereo),
		reverb.WithEarlyReflections(p.early),
	)
	if err != nil {
		return nil, err
	}

	e.SetRoomSize(p.room)
	e.SetDamping(p.damp)
	e.SetWet(p.wet)
	e.SetWidth(p.width)
	e.SetFrozen(p.freeze)

	return e, nil
}

// process decodes the input, runs it through the reverb with an appended
// tail and applies the output gain.
func process(path string, p engineParams, tailSeconds, gain float64) (*audiofile.Clip, error) {
	clip, err := audiofile.Decode(path)
	if err != nil {
		return nil, err
	}

	e, err := newEngine(clip.SampleRate, p)
	if err != nil {
		return nil, err
	}

	tailFrames := int(math.Max(0, tailSeconds) * float64(clip.SampleRate))
	frames := clip.Frames() + tailFrames

	channels := clip.Deinterleave()

	switch {
	case clip.Channels == 2 && p.stereo:
		left := append(channels[0], make([]float64, tailFrames)...)
		right := append(channels[1], make([]float64, tailFrames)...)
		e.ProcessStereoBlock(left, right)
		channels = [][]float64{left, right}

	case clip.Channels == 1 && p.stereo:
		// Mono in, stereo out: duplicate and let width spread the tail.
		left := append(channels[0], make([]float64, tailFrames)...)
		right := make([]float64, frames)
		copy(right, left)
		e.ProcessStereoBlock(left, right)
		channels = [][]float64{left, right}

	case clip.Channels <= 2:
		// Mono engine: mix down if needed, process a single channel.
		mono := make([]float64, frames)
		for i := 0; i < clip.Frames(); i++ {
			var sum float64
			for ch := range channels {
				sum += channels[ch][i]
			}
			mono[i] = sum / float64(clip.Channels)
		}
		e.ProcessBlock(mono)
		channels = [][]float64{mono}

	default:
		return nil, fmt.Errorf("unsupported channel count: %d", clip.Channels)
	}

	if gain != 1 {
		for ch := range channels {
			vecmath.ScaleBlockInPlace(channels[ch], gain)
		}
	}

	return audiofile.Interleave(channels, clip.SampleRate)
}

// runMeasure excites the engine with a unit impulse and prints room
// acoustic metrics of the resulting tail.
func runMeasure(sampleRate int, tailSeconds float64, p engineParams) error {
	p.stereo = false
	p.wet = 1

	e, err := newEngine(sampleRate, p)
	if err != nil {
		return err
	}

	gen := signal.NewGenerator(core.WithSampleRate(float64(sampleRate)))

	samples := int(math.Max(1, tailSeconds) * float64(sampleRate))
	impulse, err := gen.Impulse(1, samples)
	if err != nil {
		return err
	}

	e.ProcessBlock(impulse)

	m, err := ir.NewAnalyzer(float64(sampleRate)).Analyze(impulse)
	if err != nil {
		return err
	}

	fmt.Printf("sample rate: %d Hz\n", sampleRate)
	fmt.Printf("room: %.2f  damp: %.2f  early: %v\n", p.room, p.damp, p.early)
	fmt.Printf("RT60:        %.3f s\n", m.RT60)
	fmt.Printf("EDT:         %.3f s\n", m.EDT)
	fmt.Printf("T20:         %.3f s\n", m.T20)
	fmt.Printf("T30:         %.3f s\n", m.T30)
	fmt.Printf("C50:         %+.1f dB\n", m.C50)
	fmt.Printf("C80:         %+.1f dB\n", m.C80)
	fmt.Printf("D50:         %.3f\n", m.D50)
	fmt.Printf("center time: %.3f s\n", m.CenterTime)

	return nil
}

// playClip streams the clip to the default audio device and blocks until
// playback finishes.
func playClip(c *audiofile.Clip) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   c.SampleRate,
		ChannelCount: c.Channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	raw := make([]byte, 4*len(c.Samples))
	for i, v := range c.Samples {
		bits := math.Float32bits(float32(core.Clamp(v, -1, 1)))
		binary.LittleEndian.PutUint32(raw[4*i:], bits)
	}

	player := ctx.NewPlayer(bytes.NewReader(raw))
	player.Play()

	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	return player.Close()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
