package ssstretch

import (
	"fmt"
	"math"
)

// Stretcher stretches and pitch-shifts multi-channel audio through a
// configured Engine.
//
// All entry points validate buffer shapes before touching engine state, so
// a failed call leaves the stream exactly where it was. Instances are not
// safe for concurrent use but may be moved between goroutines; distinct
// instances are fully independent.
type Stretcher struct {
	engine     Engine
	channels   int
	sampleRate float64

	transposeFactor float64
	tonalityLimit   float64
}

// New constructs a stretcher at the default quality preset.
func New(channels int, sampleRate float64) (*Stretcher, error) {
	return NewBuilder().SampleRate(sampleRate).Build(channels)
}

// NewWithSeed constructs a stretcher at the default quality preset with
// deterministic internal jitter. Stretchers built with equal seeds and
// settings produce bit-identical output for identical input, which makes
// golden-file regression tests possible.
func NewWithSeed(channels int, sampleRate float64, seed int64) (*Stretcher, error) {
	return NewBuilder().SampleRate(sampleRate).Seed(seed).Build(channels)
}

// Mono constructs a single-channel stretcher at the default preset.
func Mono(sampleRate float64) (*Stretcher, error) { return New(1, sampleRate) }

// Stereo constructs a two-channel stretcher at the default preset.
func Stereo(sampleRate float64) (*Stretcher, error) { return New(2, sampleRate) }

// Channels returns the configured channel count.
func (s *Stretcher) Channels() int { return s.channels }

// SampleRate returns the sample rate the stretcher was built for, or zero
// when it was built from explicit block geometry.
func (s *Stretcher) SampleRate() float64 { return s.sampleRate }

// BlockSamples returns the engine's analysis block length.
func (s *Stretcher) BlockSamples() int { return s.engine.BlockSamples() }

// IntervalSamples returns the engine's synthesis hop.
func (s *Stretcher) IntervalSamples() int { return s.engine.IntervalSamples() }

// InputLatency returns the delay on the input side in samples.
func (s *Stretcher) InputLatency() int { return s.engine.InputLatency() }

// OutputLatency returns the delay on the output side in samples.
func (s *Stretcher) OutputLatency() int { return s.engine.OutputLatency() }

// TransposeFactor returns the current pitch multiplier.
func (s *Stretcher) TransposeFactor() float64 { return s.transposeFactor }

// Process streams len(inputs[0]) input samples per channel into exactly
// len(outputs[0]) output samples per channel. The time-stretch ratio is
// implicit: output length over input length. Inputs and outputs must not
// alias.
//
// Process never allocates; it is the steady-state streaming path.
func (s *Stretcher) Process(inputs, outputs [][]float32) error {
	if err := s.checkShape(inputs, "input"); err != nil {
		return err
	}
	if err := s.checkShape(outputs, "output"); err != nil {
		return err
	}

	s.engine.Process(inputs, outputs)

	return nil
}

// Seek advances the engine through inputs without producing output, as if
// the stream were playing at playbackRate input samples per output sample.
// Use it to reposition mid-stream while keeping grain continuity; transpose
// settings are unaffected.
func (s *Stretcher) Seek(inputs [][]float32, playbackRate float64) error {
	if err := s.checkShape(inputs, "input"); err != nil {
		return err
	}
	if !(playbackRate > 0) || math.IsInf(playbackRate, 0) {
		return fmt.Errorf("stretcher: playback rate must be > 0 and finite: %g: %w",
			playbackRate, ErrInvalidParam)
	}

	s.engine.Seek(inputs, playbackRate)

	return nil
}

// Flush drains buffered output at end-of-stream. No more than
// OutputLatency() meaningful samples are produced; the remainder of outputs
// is silence. Flushing with zero-length buffers is a valid no-op.
func (s *Stretcher) Flush(outputs [][]float32) error {
	if err := s.checkShape(outputs, "output"); err != nil {
		return err
	}

	s.engine.Flush(outputs)

	return nil
}

// Reset clears all buffered audio state while keeping the channel count,
// geometry, and transpose setting. After Reset the stretcher behaves like a
// freshly built instance with the same settings.
func (s *Stretcher) Reset() {
	s.engine.Reset()
}

// TransposeOption configures an optional transpose parameter.
type TransposeOption func(*transposeConfig)

type transposeConfig struct {
	tonalityLimit float64
}

// WithTonalityLimit bounds formant smearing above the given fraction of the
// Nyquist frequency, preserving the character of noise and high partials
// when transposing. The limit must lie in [0, 1]; zero keeps it off.
func WithTonalityLimit(limit float64) TransposeOption {
	return func(c *transposeConfig) { c.tonalityLimit = limit }
}

// SetTransposeFactor sets the pitch multiplier applied during processing.
// The change takes effect on subsequently processed samples without
// resetting engine state.
func (s *Stretcher) SetTransposeFactor(multiplier float64, opts ...TransposeOption) error {
	var cfg transposeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !(multiplier > 0) || math.IsInf(multiplier, 0) {
		return fmt.Errorf("stretcher: transpose factor must be > 0 and finite: %g: %w",
			multiplier, ErrInvalidParam)
	}
	if !(cfg.tonalityLimit >= 0 && cfg.tonalityLimit <= 1) {
		return fmt.Errorf("stretcher: tonality limit must be in [0, 1]: %g: %w",
			cfg.tonalityLimit, ErrInvalidParam)
	}

	s.transposeFactor = multiplier
	s.tonalityLimit = cfg.tonalityLimit
	s.engine.SetTransposeFactor(multiplier, cfg.tonalityLimit)

	return nil
}

// SetTransposeSemitones sets the pitch shift in semitones; the multiplier
// is 2^(semitones/12). Zero semitones behaves identically to never setting
// a transposition.
func (s *Stretcher) SetTransposeSemitones(semitones float64, opts ...TransposeOption) error {
	return s.SetTransposeFactor(SemitonesToFactor(semitones), opts...)
}

// checkShape validates channel count and per-channel length agreement
// before any engine call sees the buffers.
func (s *Stretcher) checkShape(bufs [][]float32, role string) error {
	if len(bufs) != s.channels {
		return fmt.Errorf("stretcher: expected %d %s channels, got %d: %w",
			s.channels, role, len(bufs), ErrChannelCount)
	}

	want := len(bufs[0])
	for ch := 1; ch < len(bufs); ch++ {
		if len(bufs[ch]) != want {
			return fmt.Errorf("stretcher: %s channel %d length %d does not match channel 0 length %d: %w",
				role, ch, len(bufs[ch]), want, ErrLengthMismatch)
		}
	}

	return nil
}
