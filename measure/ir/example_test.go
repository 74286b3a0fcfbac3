package ir_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/measure/ir"
)

func ExampleAnalyzer_Analyze() {
	sampleRate := 48000.0
	rt60 := 0.6

	// Synthetic impulse response: exponential decay reaching -60 dB
	// after rt60 seconds.
	a := 3 * math.Ln10 / rt60

	impulse := make([]float64, int(1.5*sampleRate))
	for i := range impulse {
		t := float64(i) / sampleRate
		impulse[i] = math.Exp(-a * t)
	}

	analyzer := ir.NewAnalyzer(sampleRate)

	m, err := analyzer.Analyze(impulse)
	if err != nil {
		panic(err)
	}

	fmt.Printf("RT60: %.1f s\n", m.RT60)
	fmt.Printf("D50: %.2f\n", m.D50)
	// Output:
	// RT60: 0.6 s
	// D50: 0.68
}
