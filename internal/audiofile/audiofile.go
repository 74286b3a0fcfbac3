// Package audiofile loads and stores audio clips for the command-line
// front end. Decoding dispatches on the file extension; WAV, AIFF, MP3
// and Ogg Vorbis are supported. Encoding writes 16-bit PCM WAV.
package audiofile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Clip is decoded audio: interleaved samples normalized to [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// Frames returns the number of sample frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Deinterleave splits the clip into one slice per channel.
func (c *Clip) Deinterleave() [][]float64 {
	if c.Channels <= 0 {
		return nil
	}

	frames := c.Frames()
	out := make([][]float64, c.Channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			out[ch][i] = c.Samples[i*c.Channels+ch]
		}
	}
	return out
}

// Interleave builds a clip from per-channel slices. The channels are
// truncated to the shortest one.
func Interleave(channels [][]float64, sampleRate int) (*Clip, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("audiofile: no channels to interleave")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audiofile: sample rate must be > 0: %d", sampleRate)
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	c := &Clip{
		Samples:    make([]float64, frames*len(channels)),
		SampleRate: sampleRate,
		Channels:   len(channels),
	}
	for i := 0; i < frames; i++ {
		for ch := range channels {
			c.Samples[i*len(channels)+ch] = channels[ch][i]
		}
	}
	return c, nil
}

// Decode reads an audio file, picking the decoder by extension.
func Decode(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f)
	case ".aif", ".aiff":
		return decodeAIFF(f)
	case ".mp3":
		return decodeMP3(f)
	case ".ogg":
		return decodeOGG(f)
	default:
		return nil, fmt.Errorf("audiofile: unsupported format: %s", filepath.Ext(path))
	}
}

func decodeWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("audiofile: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: wav decode: %w", err)
	}

	return clipFromIntBuffer(buf, int(dec.BitDepth))
}

func decodeAIFF(r io.ReadSeeker) (*Clip, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("audiofile: not a valid aiff file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: aiff decode: %w", err)
	}

	return clipFromIntBuffer(buf, int(dec.BitDepth))
}

func clipFromIntBuffer(buf *goaudio.IntBuffer, bitDepth int) (*Clip, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("audiofile: decoder returned no format")
	}

	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	c := &Clip{
		Samples:    make([]float64, len(buf.Data)),
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}
	for i, v := range buf.Data {
		c.Samples[i] = float64(v) * scale
	}
	return c, nil
}

func decodeMP3(r io.Reader) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: mp3 decode: %w", err)
	}

	// go-mp3 emits 16-bit little-endian stereo PCM.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("audiofile: mp3 read: %w", err)
	}

	samples := len(raw) / 2
	c := &Clip{
		Samples:    make([]float64, samples),
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}
	for i := 0; i < samples; i++ {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		c.Samples[i] = float64(v) / 32768.0
	}
	return c, nil
}

func decodeOGG(r io.Reader) (*Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: ogg decode: %w", err)
	}

	c := &Clip{
		SampleRate: dec.SampleRate(),
		Channels:   dec.Channels(),
	}

	buf := make([]float32, 4096*c.Channels)
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			c.Samples = append(c.Samples, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("audiofile: ogg read: %w", err)
		}
	}
	return c, nil
}

// EncodeWAV writes the clip as 16-bit PCM WAV. Samples outside [-1, 1]
// are clipped.
func EncodeWAV(path string, c *Clip) error {
	if c == nil || len(c.Samples) == 0 {
		return fmt.Errorf("audiofile: nothing to encode")
	}
	if c.SampleRate <= 0 || c.Channels <= 0 {
		return fmt.Errorf("audiofile: invalid clip format: %d Hz, %d channels", c.SampleRate, c.Channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: create: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, c.SampleRate, 16, c.Channels, 1)

	buf := &goaudio.IntBuffer{
		Data: make([]int, len(c.Samples)),
		Format: &goaudio.Format{
			NumChannels: c.Channels,
			SampleRate:  c.SampleRate,
		},
		SourceBitDepth: 16,
	}
	for i, v := range c.Samples {
		buf.Data[i] = int(core.Clamp(v, -1, 1) * 32767)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: wav encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: wav finalize: %w", err)
	}

	return nil
}
