// Package fft provides planned forward and inverse transforms for
// spectral processing. Complex operates on full spectra, Real on the
// half spectrum of real-valued signals. Both normalize the inverse so a
// forward-inverse round trip reproduces the input.
//
// Transform sizes must be powers of two.
package fft

// OptimalSize returns the smallest power-of-two transform size that is
// at least min.
func OptimalSize(min int) int {
	n := 1
	for n < min {
		n <<= 1
	}

	return n
}

func isPowerOf2(v int) bool {
	return v > 0 && (v&(v-1)) == 0
}
