package delay

import "fmt"

// MultiLine is a bank of independent delay lines, one per channel. All
// lines share the same maximum delay and interpolation mode.
type MultiLine struct {
	lines []*Line
}

// NewMulti creates a bank of channels delay lines, each able to reach
// delays up to maxDelay samples.
func NewMulti(channels, maxDelay int, opts ...Option) (*MultiLine, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("delay channel count must be > 0: %d", channels)
	}

	m := &MultiLine{lines: make([]*Line, channels)}

	for ch := range m.lines {
		l, err := New(maxDelay, opts...)
		if err != nil {
			return nil, err
		}
		m.lines[ch] = l
	}

	return m, nil
}

// NumChannels returns the number of delay lines in the bank.
func (m *MultiLine) NumChannels() int {
	return len(m.lines)
}

// Channel returns the delay line for channel ch.
func (m *MultiLine) Channel(ch int) *Line {
	return m.lines[ch]
}

// ProcessFrame writes one frame of input samples, one per channel, and
// returns each channel's delayed output in dst.
func (m *MultiLine) ProcessFrame(dst, src []float32, delay float64) error {
	if len(src) != len(m.lines) {
		return fmt.Errorf("delay input frame has %d channels, want %d", len(src), len(m.lines))
	}

	if len(dst) != len(m.lines) {
		return fmt.Errorf("delay output frame has %d channels, want %d", len(dst), len(m.lines))
	}

	for ch, x := range src {
		dst[ch] = m.lines[ch].ProcessSample(x, delay)
	}

	return nil
}

// Process runs the bank over planar channel blocks at a fixed delay.
// Every shape mismatch is reported before any sample is written or
// consumed.
func (m *MultiLine) Process(dst, src [][]float32, delay float64) error {
	if len(src) != len(m.lines) {
		return fmt.Errorf("delay input has %d channels, want %d", len(src), len(m.lines))
	}

	if len(dst) != len(m.lines) {
		return fmt.Errorf("delay output has %d channels, want %d", len(dst), len(m.lines))
	}

	for ch := range src {
		if len(dst[ch]) != len(src[ch]) {
			return fmt.Errorf("delay channel %d output length %d does not match input length %d",
				ch, len(dst[ch]), len(src[ch]))
		}
	}

	for ch := range src {
		for i, x := range src[ch] {
			dst[ch][i] = m.lines[ch].ProcessSample(x, delay)
		}
	}

	return nil
}

// Reset clears every line in the bank.
func (m *MultiLine) Reset() {
	for _, l := range m.lines {
		l.Reset()
	}
}
