package fft

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Real is a planned transform between a real-valued signal and its half
// spectrum. A signal of size N has N/2+1 unique bins; the remaining
// bins are their conjugate mirror and are never materialized.
type Real struct {
	fft   *fourier.FFT
	size  int
	scale float64
}

// NewReal creates a real transform for the given power-of-two size.
func NewReal(size int) (*Real, error) {
	if !isPowerOf2(size) {
		return nil, fmt.Errorf("fft size must be a power of two: %d", size)
	}

	return &Real{
		fft:   fourier.NewFFT(size),
		size:  size,
		scale: 1.0 / float64(size),
	}, nil
}

// Size returns the signal length of the transform.
func (r *Real) Size() int {
	return r.size
}

// Bins returns the number of unique spectrum bins, Size/2+1.
func (r *Real) Bins() int {
	return r.size/2 + 1
}

// Forward computes the unnormalized half spectrum of src into dst. The
// input must have length Size, the output length Bins.
func (r *Real) Forward(dst []complex128, src []float64) error {
	if len(src) != r.size {
		return fmt.Errorf("fft input length %d does not match size %d", len(src), r.size)
	}

	if len(dst) != r.Bins() {
		return fmt.Errorf("fft spectrum length %d does not match %d bins", len(dst), r.Bins())
	}

	r.fft.Coefficients(dst, src)

	return nil
}

// Inverse transforms the half spectrum src back into the real signal
// dst, applying the 1/N factor. The input must have length Bins, the
// output length Size.
func (r *Real) Inverse(dst []float64, src []complex128) error {
	if len(src) != r.Bins() {
		return fmt.Errorf("fft spectrum length %d does not match %d bins", len(src), r.Bins())
	}

	if len(dst) != r.size {
		return fmt.Errorf("fft output length %d does not match size %d", len(dst), r.size)
	}

	r.fft.Sequence(dst, src)
	vecmath.ScaleBlockInPlace(dst, r.scale)

	return nil
}
