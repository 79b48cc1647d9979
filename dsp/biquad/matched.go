package biquad

import "math"

// Matched-z designs after Vicanek, "Matched Second Order Digital
// Filters" (2016): poles from the impulse-invariant mapping of the
// analog prototype, zeros from magnitude matching at DC, Nyquist and
// the center frequency. Unlike the bilinear family these do not warp
// the frequency axis, so the response stays accurate approaching
// Nyquist.

// matchedPoles places the denominator pair for center frequency w0 and
// quality factor q via the impulse-invariant transform.
func matchedPoles(w0, q float64) (a1, a2 float64) {
	zeta := 1 / (2 * q)

	e := math.Exp(-zeta * w0)
	if zeta <= 1 {
		a1 = -2 * e * math.Cos(math.Sqrt(1-zeta*zeta)*w0)
	} else {
		a1 = -2 * e * math.Cosh(math.Sqrt(zeta*zeta-1)*w0)
	}

	a2 = e * e

	return a1, a2
}

// phi returns the magnitude basis functions at w: phi0 = cos^2(w/2),
// phi1 = sin^2(w/2), phi2 = 4*phi0*phi1. For any polynomial
// c0 + c1*z^-1 + c2*z^-2 on the unit circle,
// |.|^2 = (c0+c1+c2)^2*phi0 + (c0-c1+c2)^2*phi1 - 4*c0*c2*phi2.
func phi(w float64) (p0, p1, p2 float64) {
	s := math.Sin(w / 2)
	p1 = s * s
	p0 = 1 - p1
	p2 = 4 * p0 * p1

	return p0, p1, p2
}

// denomMagSq evaluates the squared magnitude of 1 + a1*z^-1 + a2*z^-2
// on the unit circle from the phi basis.
func denomMagSq(a1, a2, p0, p1, p2 float64) float64 {
	s0 := (1 + a1 + a2) * (1 + a1 + a2)
	s1 := (1 - a1 + a2) * (1 - a1 + a2)

	return s0*p0 + s1*p1 - 4*a2*p2
}

// matchedLowpass matches unity gain at DC exactly and the analog
// magnitude q at w0 exactly; the numerator is first order (b2 = 0).
func matchedLowpass(w0, q float64) Coefficients {
	a1, a2 := matchedPoles(w0, q)
	p0, p1, p2 := phi(w0)

	r1 := denomMagSq(a1, a2, p0, p1, p2) * q * q
	sq0 := (1 + a1 + a2) * (1 + a1 + a2)
	sq1 := math.Max(0, (r1-sq0*p0)/p1)

	b0 := (math.Sqrt(sq0) + math.Sqrt(sq1)) / 2
	b1 := math.Sqrt(sq0) - b0

	return Coefficients{B0: b0, B1: b1, A1: a1, A2: a2}
}

// matchedHighpass keeps the exact double zero at DC and matches the
// analog magnitude q at w0 exactly.
func matchedHighpass(w0, q float64) Coefficients {
	a1, a2 := matchedPoles(w0, q)
	p0, p1, p2 := phi(w0)

	b0 := q * math.Sqrt(denomMagSq(a1, a2, p0, p1, p2)) / (4 * p1)

	return Coefficients{B0: b0, B1: -2 * b0, B2: b0, A1: a1, A2: a2}
}

// matchedBandpass keeps the exact zeros at DC and Nyquist and matches
// unity gain at w0 exactly.
func matchedBandpass(w0, q float64) Coefficients {
	a1, a2 := matchedPoles(w0, q)
	p0, p1, p2 := phi(w0)

	b0 := math.Sqrt(denomMagSq(a1, a2, p0, p1, p2)) / (2 * math.Sqrt(p2))

	return Coefficients{B0: b0, B2: -b0, A1: a1, A2: a2}
}

// matchedNotch places the zero pair exactly on the unit circle at w0
// and matches unity gain at DC exactly.
func matchedNotch(w0, q float64) Coefficients {
	a1, a2 := matchedPoles(w0, q)
	cw := math.Cos(w0)

	b0 := (1 + a1 + a2) / (2 - 2*cw)

	return Coefficients{B0: b0, B1: -2 * cw * b0, B2: b0, A1: a1, A2: a2}
}

// matchedPeak builds both quadratics with the impulse-invariant
// mapping, splitting the gain across them the way the cookbook peak
// does (denominator at q*A, numerator at q/A), and scales for exact
// unity gain at DC.
func matchedPeak(w0, q, gainDB float64) Coefficients {
	a := math.Pow(10, gainDB/40)

	a1, a2 := matchedPoles(w0, q*a)
	z1, z2 := matchedPoles(w0, q/a)

	g := (1 + a1 + a2) / (1 + z1 + z2)

	return Coefficients{B0: g, B1: g * z1, B2: g * z2, A1: a1, A2: a2}
}
