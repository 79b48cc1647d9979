package biquad

import "fmt"

// Coefficients holds normalized biquad coefficients (a0 == 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Identity returns passthrough coefficients.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Filter is a single biquad section in direct form I.
// The zero value is not usable; construct via New.
type Filter struct {
	Coefficients

	x1, x2 float64
	y1, y2 float64
}

// New returns a passthrough filter. Call a shape method (Lowpass,
// Peak, ...) to design its coefficients.
func New() *Filter {
	return &Filter{Coefficients: Identity()}
}

// ProcessSample filters one sample through the direct-form-I
// difference equation
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
//
// updating the input and output histories.
func (f *Filter) ProcessSample(x float32) float32 {
	x0 := float64(x)
	y0 := f.B0*x0 + f.B1*f.x1 + f.B2*f.x2 - f.A1*f.y1 - f.A2*f.y2

	f.x2 = f.x1
	f.x1 = x0
	f.y2 = f.y1
	f.y1 = y0

	return float32(y0)
}

// ProcessBuffer filters src into dst sample by sample. The slices must
// have the same length; on mismatch an error is returned before any
// sample is written. In-place processing (dst and src aliasing the
// same storage) is allowed. No allocation occurs.
func (f *Filter) ProcessBuffer(dst, src []float32) error {
	if len(dst) != len(src) {
		return fmt.Errorf("biquad: output length %d does not match input length %d", len(dst), len(src))
	}

	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}

	return nil
}

// Reset zeroes the input and output histories. Coefficients are
// untouched.
func (f *Filter) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}

// SetCoefficients replaces the coefficients directly, leaving the
// history untouched.
func (f *Filter) SetCoefficients(c Coefficients) {
	f.Coefficients = c
}
