package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

func TestImpulse(t *testing.T) {
	g := NewGenerator()

	out, err := g.Impulse(0.5, 16)
	if err != nil {
		t.Fatal(err)
	}

	if out[0] != 0.5 {
		t.Fatalf("out[0] = %v, want 0.5", out[0])
	}
	for i := 1; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, out[i])
		}
	}

	if _, err := g.Impulse(1, 0); err == nil {
		t.Fatal("expected error for samples=0")
	}
}

func TestSineFrequency(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	out, err := g.Sine(250, 1, 8)
	if err != nil {
		t.Fatal(err)
	}

	// 250 Hz at 1 kHz: period of 4 samples -> 0, 1, 0, -1, ...
	want := []float64{0, 1, 0, -1, 0, 1, 0, -1}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(7))
	g2 := NewGeneratorWithOptions(nil, WithSeed(7))

	a, err := g1.WhiteNoise(1, 64)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g2.WhiteNoise(1, 64)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("sample %d out of range: %v", i, a[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.5, -0.25}, 1)
	if err != nil {
		t.Fatal(err)
	}

	if out[0] != 1 || out[1] != -0.5 {
		t.Fatalf("got %v, want [1 -0.5]", out)
	}

	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
}
