package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) at the
// normalized frequency freq (cycles/sample).
func (c *Coefficients) Response(freq float64) complex128 {
	w := 2 * math.Pi * freq
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w

	return num / den
}

// MagnitudeSquared returns |H(freq)|^2 using a closed-form expression.
// This avoids computing complex exponentials.
func (c *Coefficients) MagnitudeSquared(freq float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freq)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns 10*log10(|H(freq)|^2).
func (c *Coefficients) MagnitudeDB(freq float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freq))
}

// Phase returns the phase response in radians at the normalized
// frequency freq. The result is in [-pi, pi].
func (c *Coefficients) Phase(freq float64) float64 {
	return cmplx.Phase(c.Response(freq))
}

// ImpulseResponse computes n samples of the impulse response h[n] by
// feeding a unit impulse through the filter. The live history is saved
// and restored, so calling this mid-stream does not disturb
// processing.
func (f *Filter) ImpulseResponse(n int) []float32 {
	if n <= 0 {
		return nil
	}

	x1, x2, y1, y2 := f.x1, f.x2, f.y1, f.y2
	f.Reset()

	ir := make([]float32, n)
	ir[0] = f.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = f.ProcessSample(0)
	}

	f.x1, f.x2, f.y1, f.y2 = x1, x2, y1, y2

	return ir
}
