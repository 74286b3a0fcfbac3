package ir

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// MagnitudeSpectrumDB computes the magnitude spectrum of an impulse
// response in dB. The IR is zero-padded to the next power of two and the
// first n/2+1 bins are returned, bin k covering k*sampleRate/n Hz.
//
// Useful for coloration checks: the spectral flatness of a diffuser or
// the comb structure of a feedback delay shows up directly in the bins.
func MagnitudeSpectrumDB(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	n := nextPowerOf2(len(ir))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("ir: spectrum fft plan: %w", err)
	}

	input := make([]complex128, n)
	for i, v := range ir {
		input[i] = complex(v, 0)
	}

	output := make([]complex128, n)
	if err := plan.Forward(output, input); err != nil {
		return nil, fmt.Errorf("ir: spectrum fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := 0; k < bins; k++ {
		re[k] = real(output[k])
		im[k] = imag(output[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	db := make([]float64, bins)
	for k, m := range mag {
		db[k] = core.LinearToDB(m)
	}

	return db, nil
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
