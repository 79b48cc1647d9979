package ssstretch

// Engine is the pluggable stretch engine behind a Stretcher.
//
// The facade owns all validation: an Engine may assume Configure received
// positive geometry, that buffer shapes match the configured channel count,
// and that per-channel lengths are equal. Engines are infallible once
// configured and must not retain the passed slices.
//
// The default implementation is a streaming phase vocoder; any
// implementation honoring these contracts can replace it through
// [Builder.Engine].
type Engine interface {
	// Configure sets the channel count and frame geometry and allocates
	// all internal state. It implies a reset.
	Configure(channels, blockSamples, intervalSamples int)

	// Reset clears audio state without touching geometry or
	// transposition.
	Reset()

	// BlockSamples returns the configured analysis block length.
	BlockSamples() int

	// IntervalSamples returns the configured synthesis hop.
	IntervalSamples() int

	// InputLatency returns the input-side delay in samples.
	InputLatency() int

	// OutputLatency returns the output-side delay in samples.
	OutputLatency() int

	// SetTransposeFactor applies a pitch multiplier with a tonality limit
	// expressed as a fraction of the Nyquist frequency; a zero limit
	// disables it. Audio state is preserved.
	SetTransposeFactor(multiplier, tonalityLimit float64)

	// Process consumes len(inputs[0]) samples per channel and renders
	// exactly len(outputs[0]) samples per channel. The stretch ratio is
	// the ratio of those lengths.
	Process(inputs, outputs [][]float32)

	// Seek advances the analysis position through inputs without
	// producing output, as if playing at playbackRate input samples per
	// output sample.
	Seek(inputs [][]float32, playbackRate float64)

	// Flush drains the processing tail. At most OutputLatency() samples
	// carry signal; the rest of outputs is zeroed.
	Flush(outputs [][]float32)
}
