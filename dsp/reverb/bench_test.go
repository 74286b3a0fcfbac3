package reverb

import "testing"

func BenchmarkProcessSample(b *testing.B) {
	e, err := New(44100, WithStereo(false))
	if err != nil {
		b.Fatal(err)
	}

	e.SetWet(1)

	b.ResetTimer()

	var out float64
	for i := 0; i < b.N; i++ {
		out = e.ProcessSample(0.5)
	}
	_ = out
}

func BenchmarkProcessStereoBlock(b *testing.B) {
	e, err := New(44100)
	if err != nil {
		b.Fatal(err)
	}

	left := make([]float64, 512)
	right := make([]float64, 512)
	for i := range left {
		left[i] = 0.5
		right[i] = -0.5
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.ProcessStereoBlock(left, right)
	}
}

func BenchmarkProcessSampleEarlyReflections(b *testing.B) {
	e, err := New(44100, WithStereo(false), WithEarlyReflections(true))
	if err != nil {
		b.Fatal(err)
	}

	e.SetWet(1)

	b.ResetTimer()

	var out float64
	for i := 0; i < b.N; i++ {
		out = e.ProcessSample(0.5)
	}
	_ = out
}
