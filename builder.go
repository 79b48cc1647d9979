package ssstretch

import (
	"fmt"
	"math"

	"github.com/bmisiak/ssstretch/internal/granular"
)

// Quality presets in seconds of audio, scaled by the sample rate at Build.
const (
	defaultBlockSeconds    = 0.12
	defaultIntervalSeconds = 0.03
	cheaperBlockSeconds    = 0.10
	cheaperIntervalSeconds = 0.04
)

// Builder accumulates stretcher settings in any order. Build is terminal:
// it consumes the builder, validates the accumulated settings, and is the
// only call that allocates the engine.
//
// With no explicit preset or geometry, Build uses the default quality
// preset, which requires a sample rate.
type Builder struct {
	sampleRate float64
	seed       int64
	seeded     bool
	cheaper    bool

	block    int
	interval int

	factor    float64
	factorSet bool
	tonality  float64

	engine Engine
	built  bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// SampleRate sets the sample rate in Hz used to derive preset geometry.
func (b *Builder) SampleRate(rate float64) *Builder {
	b.sampleRate = rate
	return b
}

// Seed makes all pseudo-randomized internal jitter deterministic.
func (b *Builder) Seed(seed int64) *Builder {
	b.seed = seed
	b.seeded = true

	return b
}

// PresetDefault selects the default quality preset.
func (b *Builder) PresetDefault() *Builder {
	b.cheaper = false
	return b
}

// PresetCheaper selects a cheaper preset with lower latency and quality.
func (b *Builder) PresetCheaper() *Builder {
	b.cheaper = true
	return b
}

// Configure sets explicit frame geometry, overriding any preset.
func (b *Builder) Configure(blockSamples, intervalSamples int) *Builder {
	b.block = blockSamples
	b.interval = intervalSamples

	return b
}

// TransposeFactor sets the initial pitch multiplier.
func (b *Builder) TransposeFactor(multiplier float64) *Builder {
	b.factor = multiplier
	b.factorSet = true

	return b
}

// TransposeSemitones sets the initial pitch shift in semitones.
func (b *Builder) TransposeSemitones(semitones float64) *Builder {
	return b.TransposeFactor(SemitonesToFactor(semitones))
}

// TonalityLimit sets the initial tonality limit as a fraction of the
// Nyquist frequency.
func (b *Builder) TonalityLimit(limit float64) *Builder {
	b.tonality = limit
	return b
}

// Engine injects a custom stretch engine in place of the default streaming
// phase vocoder. The engine receives Configure and SetTransposeFactor calls
// during Build.
func (b *Builder) Engine(e Engine) *Builder {
	b.engine = e
	return b
}

// Build validates the accumulated settings and constructs the stretcher.
// Invalid settings surface here, not at the setter that introduced them.
func (b *Builder) Build(channels int) (*Stretcher, error) {
	if b.built {
		return nil, fmt.Errorf("stretcher: builder already consumed: %w", ErrInvalidConfig)
	}
	b.built = true

	if channels < 1 {
		return nil, fmt.Errorf("stretcher: channel count must be >= 1: %d: %w",
			channels, ErrInvalidConfig)
	}

	block, interval := b.block, b.interval
	if block == 0 && interval == 0 {
		if !(b.sampleRate > 0) || math.IsInf(b.sampleRate, 0) {
			return nil, fmt.Errorf("stretcher: sample rate must be > 0 for preset geometry: %g: %w",
				b.sampleRate, ErrInvalidConfig)
		}

		blockSec, intervalSec := defaultBlockSeconds, defaultIntervalSeconds
		if b.cheaper {
			blockSec, intervalSec = cheaperBlockSeconds, cheaperIntervalSeconds
		}

		block = int(math.Round(blockSec * b.sampleRate))
		interval = int(math.Round(intervalSec * b.sampleRate))
	}

	if block < 1 || interval < 1 || interval > block {
		return nil, fmt.Errorf("stretcher: block %d and interval %d must satisfy 1 <= interval <= block: %w",
			block, interval, ErrInvalidConfig)
	}

	factor := 1.0
	if b.factorSet {
		factor = b.factor
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("stretcher: transpose factor must be > 0 and finite: %g: %w",
			factor, ErrInvalidConfig)
	}
	if !(b.tonality >= 0 && b.tonality <= 1) {
		return nil, fmt.Errorf("stretcher: tonality limit must be in [0, 1]: %g: %w",
			b.tonality, ErrInvalidConfig)
	}

	engine := b.engine
	if engine == nil {
		if b.seeded {
			engine = granular.NewWithSeed(b.seed)
		} else {
			engine = granular.New()
		}
	}

	engine.Configure(channels, block, interval)
	engine.SetTransposeFactor(factor, b.tonality)

	return &Stretcher{
		engine:          engine,
		channels:        channels,
		sampleRate:      b.sampleRate,
		transposeFactor: factor,
		tonalityLimit:   b.tonality,
	}, nil
}
