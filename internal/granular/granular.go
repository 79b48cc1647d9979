package granular

import (
	"math"
	"math/rand"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/bmisiak/ssstretch/dsp/fft"
	"github.com/bmisiak/ssstretch/dsp/window"
)

const olaNormFloor = 1e-12

// maxPhaseJitter bounds the seeded initial synthesis phase offset, in
// radians. The bins spanning one spectral peak must stay phase-coherent
// or the overlap-add cancels their energy, so the offset stays well
// under a radian; equal seeds still produce bit-identical output.
const maxPhaseJitter = 0.05

// Engine is the default stretch engine: a streaming phase vocoder with a
// fixed synthesis hop and a variable analysis hop.
//
// Every IntervalSamples output samples the engine analyzes the newest FFT
// block of input history, propagates per-bin phase by the measured
// instantaneous frequency, and overlap-adds the rendered frame onto a fixed
// output grid. The ratio of analysis hop to synthesis hop is what stretches
// time; transposition remaps bins before synthesis.
//
// The engine performs no shape validation and allocates only in Configure.
// Callers own buffer checks. Not safe for concurrent use.
type Engine struct {
	seed int64

	channels int
	block    int
	interval int
	fftSize  int
	bins     int
	olaLen   int

	transposeFactor float64
	tonalityLimit   float64
	identity        bool

	plan         *algofft.Plan[complex128]
	windowCoeffs []float64
	omega        []float64
	invNorm      []float64

	srcLow     []int
	srcFrac    []float64
	freqScale  []float64
	freqOffset []float64
	jitter     []float64

	history   [][]float32
	histPos   int
	histTotal int64

	ola [][]float32

	prevPhase     [][]float64
	sumPhase      [][]float64
	havePrevPhase bool
	haveSumPhase  bool
	prevFrameEnd  int64

	outCount     int64
	frameOutNext int64
	frameInNext  float64

	analysisSpectrum  []complex128
	synthesisSpectrum []complex128
	timeFrame         []complex128
	magnitudes        []float64
	phases            []float64
	frequencies       []float64
	outMagnitudes     []float64
	outFrequencies    []float64
}

// New creates an engine with a time-derived seed.
func New() *Engine {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates an engine whose initial synthesis phases derive from
// seed. Engines built with equal seeds, geometry, and input produce
// bit-identical output.
func NewWithSeed(seed int64) *Engine {
	return &Engine{seed: seed, transposeFactor: 1}
}

// Configure sets the channel count and frame geometry and allocates all
// processing state. blockSamples is rounded up to the next power of two for
// the internal FFT; reported geometry keeps the requested values.
// Configure resets the engine.
func (e *Engine) Configure(channels, blockSamples, intervalSamples int) {
	if channels <= 0 || blockSamples <= 0 || intervalSamples <= 0 {
		return
	}

	e.channels = channels
	e.block = blockSamples
	e.interval = intervalSamples
	e.fftSize = fft.OptimalSize(blockSamples)
	e.bins = e.fftSize/2 + 1
	e.olaLen = e.fftSize + e.interval

	plan, err := algofft.NewPlan64(e.fftSize)
	if err != nil {
		// Without a plan the engine cannot run; clear the geometry so
		// it does not report itself as configured.
		e.plan = nil
		e.channels = 0
		e.block = 0
		e.interval = 0
		e.fftSize = 0
		e.bins = 0
		e.olaLen = 0

		return
	}
	e.plan = plan

	e.windowCoeffs = window.Generate(window.TypeHann, e.fftSize, window.WithPeriodic())

	e.omega = make([]float64, e.bins)
	for k := range e.omega {
		e.omega[k] = 2 * math.Pi * float64(k) / float64(e.fftSize)
	}

	e.invNorm = make([]float64, e.interval)
	for j := range e.invNorm {
		sum := 0.0
		for p := j; p < e.fftSize; p += e.interval {
			w := e.windowCoeffs[p]
			sum += w * w
		}

		if sum > olaNormFloor {
			e.invNorm[j] = 1 / sum
		} else {
			e.invNorm[j] = 1
		}
	}

	e.history = make([][]float32, channels)
	e.ola = make([][]float32, channels)
	e.prevPhase = make([][]float64, channels)
	e.sumPhase = make([][]float64, channels)
	for ch := range e.history {
		e.history[ch] = make([]float32, e.fftSize)
		e.ola[ch] = make([]float32, e.olaLen)
		e.prevPhase[ch] = make([]float64, e.bins)
		e.sumPhase[ch] = make([]float64, e.bins)
	}

	e.analysisSpectrum = make([]complex128, e.fftSize)
	e.synthesisSpectrum = make([]complex128, e.fftSize)
	e.timeFrame = make([]complex128, e.fftSize)
	e.magnitudes = make([]float64, e.bins)
	e.phases = make([]float64, e.bins)
	e.frequencies = make([]float64, e.bins)
	e.outMagnitudes = make([]float64, e.bins)
	e.outFrequencies = make([]float64, e.bins)
	e.jitter = make([]float64, e.bins)
	e.srcLow = make([]int, e.bins)
	e.srcFrac = make([]float64, e.bins)
	e.freqScale = make([]float64, e.bins)
	e.freqOffset = make([]float64, e.bins)

	e.rebuildRemap()
	e.Reset()
}

// Reset clears all audio state while keeping geometry and transposition.
// After Reset the engine behaves exactly like a freshly constructed engine
// with the same seed and configuration.
func (e *Engine) Reset() {
	rng := rand.New(rand.NewSource(e.seed))
	for k := range e.jitter {
		e.jitter[k] = (rng.Float64()*2 - 1) * maxPhaseJitter
	}

	for ch := range e.history {
		clearFloat32(e.history[ch])
		clearFloat32(e.ola[ch])
		clearFloat64(e.prevPhase[ch])
		clearFloat64(e.sumPhase[ch])
	}

	e.histPos = 0
	e.histTotal = 0
	e.outCount = 0
	e.frameOutNext = 0
	e.frameInNext = 0
	e.prevFrameEnd = 0
	e.havePrevPhase = false
	e.haveSumPhase = false
}

// BlockSamples returns the configured analysis block length.
func (e *Engine) BlockSamples() int { return e.block }

// IntervalSamples returns the configured synthesis hop.
func (e *Engine) IntervalSamples() int { return e.interval }

// InputLatency returns the input-side latency in samples.
func (e *Engine) InputLatency() int { return e.block / 2 }

// OutputLatency returns the output-side latency in samples.
func (e *Engine) OutputLatency() int { return e.block/2 + e.interval }

// SetTransposeFactor sets the pitch multiplier and tonality limit.
//
// Bins below the tonality knee are remapped multiplicatively; bins above it
// keep their spectral envelope and shift by a constant frequency offset,
// which preserves the character of noise and high partials. tonalityLimit
// is a fraction of the Nyquist frequency; zero disables the knee.
func (e *Engine) SetTransposeFactor(multiplier, tonalityLimit float64) {
	e.transposeFactor = multiplier
	e.tonalityLimit = tonalityLimit
	e.rebuildRemap()
}

func (e *Engine) rebuildRemap() {
	if e.bins == 0 {
		return
	}

	f := e.transposeFactor
	if !(f > 0) || math.IsInf(f, 0) {
		f = 1
	}

	// A single-bin spectrum has nothing to remap.
	e.identity = f == 1 || e.bins < 2

	half := float64(e.bins - 1)

	knee := 0.0
	if e.tonalityLimit > 0 {
		knee = e.tonalityLimit * half
	}

	for k := range e.srcLow {
		kf := float64(k)

		src := kf / f
		scale := f
		offset := 0.0
		if knee > 0 && kf >= knee*f {
			src = kf - knee*(f-1)
			scale = 1
			offset = math.Pi * e.tonalityLimit * (f - 1)
		}

		if src < 0 {
			src = 0
		}
		if src > half {
			src = half
		}

		lo := int(src)
		frac := src - float64(lo)
		if lo >= e.bins-1 {
			lo = e.bins - 2
			frac = 1
			if lo < 0 {
				lo, frac = 0, 0
			}
		}

		e.srcLow[k] = lo
		e.srcFrac[k] = frac
		e.freqScale[k] = scale
		e.freqOffset[k] = offset
	}
}

func clearFloat32(s []float32) {
	for i := range s {
		s[i] = 0
	}
}

func clearFloat64(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
