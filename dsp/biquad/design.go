package biquad

import (
	"fmt"
	"math"
)

// Design selects the analog-to-digital coefficient derivation.
type Design int

const (
	DesignBilinear Design = iota
	DesignCookbook
	DesignOneSided
	DesignVicanek
)

// DesignOption configures a shape method.
type DesignOption func(*designConfig)

type designConfig struct {
	design Design
}

// WithDesign selects the design method. The default is DesignCookbook.
func WithDesign(d Design) DesignOption {
	return func(c *designConfig) {
		c.design = d
	}
}

func applyDesignOpts(opts []DesignOption) designConfig {
	cfg := designConfig{design: DesignCookbook}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Lowpass designs a lowpass at the normalized frequency freq with
// quality factor q.
func (f *Filter) Lowpass(freq, q float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validQ(q); err != nil {
		return err
	}

	if applyDesignOpts(opts).design == DesignVicanek {
		f.Coefficients = matchedLowpass(w0, q)
		return nil
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	f.Coefficients = normalize((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha)

	return nil
}

// Highpass designs a highpass at the normalized frequency freq with
// quality factor q.
func (f *Filter) Highpass(freq, q float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validQ(q); err != nil {
		return err
	}

	if applyDesignOpts(opts).design == DesignVicanek {
		f.Coefficients = matchedHighpass(w0, q)
		return nil
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	f.Coefficients = normalize((1+cw)/2, -(1 + cw), (1+cw)/2, 1+alpha, -2*cw, 1-alpha)

	return nil
}

// Allpass designs an allpass at the normalized frequency freq with
// quality factor q. All design methods coincide for this shape.
func (f *Filter) Allpass(freq, q float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validQ(q); err != nil {
		return err
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	f.Coefficients = normalize(1-alpha, -2*cw, 1+alpha, 1+alpha, -2*cw, 1-alpha)

	return nil
}

// Bandpass designs a constant-peak-gain bandpass at the normalized
// frequency freq with the given bandwidth in octaves.
func (f *Filter) Bandpass(freq, octaves float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validOctaves(octaves); err != nil {
		return err
	}

	cfg := applyDesignOpts(opts)
	if cfg.design == DesignVicanek {
		f.Coefficients = matchedBandpass(w0, octaveQ(octaves))
		return nil
	}

	cw := math.Cos(w0)
	alpha := bandwidthAlpha(cfg.design, w0, octaves)
	f.Coefficients = normalize(alpha, 0, -alpha, 1+alpha, -2*cw, 1-alpha)

	return nil
}

// Notch designs a notch at the normalized frequency freq with the
// given bandwidth in octaves.
func (f *Filter) Notch(freq, octaves float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validOctaves(octaves); err != nil {
		return err
	}

	cfg := applyDesignOpts(opts)
	if cfg.design == DesignVicanek {
		f.Coefficients = matchedNotch(w0, octaveQ(octaves))
		return nil
	}

	cw := math.Cos(w0)
	alpha := bandwidthAlpha(cfg.design, w0, octaves)
	f.Coefficients = normalize(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)

	return nil
}

// Peak designs a peaking EQ at the normalized frequency freq with the
// given bandwidth in octaves and gain in dB.
func (f *Filter) Peak(freq, octaves, gainDB float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validOctaves(octaves); err != nil {
		return err
	}

	if err := validGain(gainDB); err != nil {
		return err
	}

	cfg := applyDesignOpts(opts)
	if cfg.design == DesignVicanek {
		f.Coefficients = matchedPeak(w0, octaveQ(octaves), gainDB)
		return nil
	}

	cw := math.Cos(w0)
	alpha := bandwidthAlpha(cfg.design, w0, octaves)
	a := math.Pow(10, gainDB/40)
	f.Coefficients = normalize(1+alpha*a, -2*cw, 1-alpha*a, 1+alpha/a, -2*cw, 1-alpha/a)

	return nil
}

// LowShelf designs a low shelf at the normalized frequency freq with
// the given bandwidth in octaves and gain in dB.
func (f *Filter) LowShelf(freq, octaves, gainDB float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validOctaves(octaves); err != nil {
		return err
	}

	if err := validGain(gainDB); err != nil {
		return err
	}

	cw := math.Cos(w0)
	alpha := bandwidthAlpha(shelfDesign(applyDesignOpts(opts).design), w0, octaves)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	f.Coefficients = normalize(b0, b1, b2, a0, a1, a2)

	return nil
}

// HighShelf designs a high shelf at the normalized frequency freq with
// the given bandwidth in octaves and gain in dB.
func (f *Filter) HighShelf(freq, octaves, gainDB float64, opts ...DesignOption) error {
	w0, err := normalizedW0(freq)
	if err != nil {
		return err
	}

	if err := validOctaves(octaves); err != nil {
		return err
	}

	if err := validGain(gainDB); err != nil {
		return err
	}

	cw := math.Cos(w0)
	alpha := bandwidthAlpha(shelfDesign(applyDesignOpts(opts).design), w0, octaves)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	f.Coefficients = normalize(b0, b1, b2, a0, a1, a2)

	return nil
}

// shelfDesign maps the requested design to one the shelves implement.
func shelfDesign(d Design) Design {
	if d == DesignVicanek {
		return DesignOneSided
	}

	return d
}

// bandwidthAlpha converts an octave bandwidth at w0 into the cookbook
// alpha parameter under the given design method.
func bandwidthAlpha(d Design, w0, octaves float64) float64 {
	sw := math.Sin(w0)

	switch d {
	case DesignCookbook:
		// Cookbook pre-warp: scale the bandwidth by w0/sin(w0) so the
		// octave spread survives the bilinear frequency compression.
		return sw * math.Sinh(math.Ln2/2*octaves*w0/sw)
	case DesignOneSided:
		// Place the upper band edge exactly on the warped axis. With
		// edge ratio r, sinh(ln r) collapses to (r - 1/r)/2.
		wTop := w0 * math.Exp2(octaves/2)
		if wTop > topEdgeLimit {
			wTop = topEdgeLimit
		}

		r := math.Tan(wTop/2) / math.Tan(w0/2)

		return sw * (r - 1/r) / 2
	default:
		return sw * math.Sinh(math.Ln2/2*octaves)
	}
}

const topEdgeLimit = math.Pi * 0.9999

// octaveQ converts an octave bandwidth to a quality factor without
// frequency warping, as used by the matched-z pole placement.
func octaveQ(octaves float64) float64 {
	return 1 / (2 * math.Sinh(math.Ln2/2*octaves))
}

func normalizedW0(freq float64) (float64, error) {
	if !(freq > 0 && freq < 0.5) {
		return 0, fmt.Errorf("biquad: frequency must be in (0, 0.5) cycles/sample, got %v", freq)
	}

	return 2 * math.Pi * freq, nil
}

func validQ(q float64) error {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return fmt.Errorf("biquad: q must be positive and finite, got %v", q)
	}

	return nil
}

func validOctaves(octaves float64) error {
	if octaves <= 0 || math.IsNaN(octaves) || math.IsInf(octaves, 0) {
		return fmt.Errorf("biquad: bandwidth must be positive and finite, got %v octaves", octaves)
	}

	return nil
}

func validGain(gainDB float64) error {
	if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return fmt.Errorf("biquad: gain must be finite, got %v dB", gainDB)
	}

	return nil
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Identity()
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
