// Package delay implements circular delay lines with integer and
// fractional read positions, for single channels and channel banks.
package delay

import (
	"fmt"

	"github.com/bmisiak/ssstretch/dsp/interp"
)

// Mode selects the interpolation kernel used for fractional reads.
type Mode int

const (
	// Linear interpolates between the two samples nearest the read
	// position. Exact for piecewise-linear signals.
	Linear Mode = iota
	// Hermite uses the 4-point Catmull-Rom kernel for smoother
	// reconstruction of curved signals.
	Hermite
)

// Option configures a delay line.
type Option func(*Line)

// WithMode selects the interpolation kernel used by ReadFractional and
// ProcessSample. The default is Linear.
func WithMode(mode Mode) Option {
	return func(l *Line) { l.mode = mode }
}

// Line is a single-channel circular delay line. The write head advances
// one slot per Write; Read(0) returns the most recently written sample
// and Read(k) the sample written k calls earlier, up to the maximum
// delay fixed at construction.
//
// Sample storage is float32; interpolation runs in float64.
type Line struct {
	buffer   []float32
	writePos int
	maxDelay int
	mode     Mode
}

// New creates a delay line able to reach delays up to maxDelay samples.
func New(maxDelay int, opts ...Option) (*Line, error) {
	if maxDelay <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", maxDelay)
	}

	l := &Line{
		buffer:   make([]float32, maxDelay+1),
		maxDelay: maxDelay,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// MaxDelay returns the largest delay, in samples, this line can reach.
func (l *Line) MaxDelay() int {
	return l.maxDelay
}

// Write pushes one sample into the line, advancing the write head.
func (l *Line) Write(x float32) {
	l.buffer[l.writePos] = x
	l.writePos++

	if l.writePos == len(l.buffer) {
		l.writePos = 0
	}
}

// Read returns the sample written delay calls ago. Read(0) is the most
// recent sample. Delays outside [0, MaxDelay] are clamped.
func (l *Line) Read(delay int) float32 {
	if delay < 0 {
		delay = 0
	} else if delay > l.maxDelay {
		delay = l.maxDelay
	}

	idx := l.writePos - 1 - delay
	if idx < 0 {
		idx += len(l.buffer)
	}

	return l.buffer[idx]
}

// ReadFractional returns the sample at a fractional delay, interpolated
// with the line's configured kernel. The delay is clamped into the range
// the kernel can serve.
func (l *Line) ReadFractional(delay float64) float32 {
	if l.mode == Hermite && l.maxDelay >= 3 {
		return l.readHermite(delay)
	}

	return l.readLinear(delay)
}

func (l *Line) readLinear(delay float64) float32 {
	delay = clampFloat(delay, 0, float64(l.maxDelay))

	p := int(delay)
	if p >= l.maxDelay {
		return l.Read(l.maxDelay)
	}

	t := delay - float64(p)
	x0 := float64(l.Read(p))
	x1 := float64(l.Read(p + 1))

	return float32(interp.Linear(t, x0, x1))
}

func (l *Line) readHermite(delay float64) float32 {
	// The 4-point kernel needs one sample on the near side and two on
	// the far side of the read position.
	delay = clampFloat(delay, 1, float64(l.maxDelay-2))

	p := int(delay)
	if p > l.maxDelay-2 {
		p = l.maxDelay - 2
	}

	t := delay - float64(p)
	xm1 := float64(l.Read(p - 1))
	x0 := float64(l.Read(p))
	x1 := float64(l.Read(p + 1))
	x2 := float64(l.Read(p + 2))

	return float32(interp.Hermite4(t, xm1, x0, x1, x2))
}

// ProcessSample writes one input sample and returns the output at the
// given fractional delay. A delay of zero returns the input unchanged.
func (l *Line) ProcessSample(x float32, delay float64) float32 {
	l.Write(x)
	return l.ReadFractional(delay)
}

// ProcessBuffer runs the line over src at a fixed delay, writing results
// to dst. The slices must have equal length and may alias. A length
// mismatch fails before any sample is written or consumed.
func (l *Line) ProcessBuffer(dst, src []float32, delay float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("delay output length %d does not match input length %d", len(dst), len(src))
	}

	for i, x := range src {
		dst[i] = l.ProcessSample(x, delay)
	}

	return nil
}

// Reset clears the stored samples and rewinds the write head.
func (l *Line) Reset() {
	for i := range l.buffer {
		l.buffer[i] = 0
	}
	l.writePos = 0
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}
