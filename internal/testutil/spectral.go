package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/bmisiak/ssstretch/dsp/fft"
	"github.com/bmisiak/ssstretch/dsp/window"
)

// Energy returns the sum of squared samples.
func Energy(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return sum
}

// RMS returns the root mean square level of x.
func RMS(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(Energy(x) / float64(len(x)))
}

// DominantFrequency estimates the strongest spectral component of x in
// cycles per sample, analyzing the longest power-of-two prefix with a
// Hann window and refining the peak bin parabolically.
func DominantFrequency(t *testing.T, x []float32) float64 {
	t.Helper()

	n := 1
	for n*2 <= len(x) {
		n *= 2
	}
	if n < 16 {
		t.Fatalf("signal too short for spectral analysis: %d samples", len(x))
	}

	tr, err := fft.NewReal(n)
	if err != nil {
		t.Fatal(err)
	}

	coeffs := window.Generate(window.TypeHann, n, window.WithPeriodic())
	frame := make([]float64, n)
	for i := range frame {
		frame[i] = float64(x[i]) * coeffs[i]
	}

	spec := make([]complex128, tr.Bins())
	if err := tr.Forward(spec, frame); err != nil {
		t.Fatal(err)
	}

	mags := make([]float64, len(spec))
	for k, v := range spec {
		mags[k] = cmplx.Abs(v)
	}

	peak := 1
	for k := 2; k < len(mags)-1; k++ {
		if mags[k] > mags[peak] {
			peak = k
		}
	}

	// Parabolic refinement over log magnitudes.
	logAt := func(k int) float64 {
		return math.Log(mags[k] + 1e-300)
	}
	alpha, beta, gamma := logAt(peak-1), logAt(peak), logAt(peak+1)

	delta := 0.0
	if denom := alpha - 2*beta + gamma; denom != 0 {
		delta = 0.5 * (alpha - gamma) / denom
	}
	if delta < -0.5 {
		delta = -0.5
	} else if delta > 0.5 {
		delta = 0.5
	}

	return (float64(peak) + delta) / float64(n)
}
