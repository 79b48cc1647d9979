// Package ssstretch provides streaming multi-channel time stretching and
// pitch shifting behind a small, validation-first facade.
//
// A Stretcher wraps a stretch [Engine] (by default a streaming phase
// vocoder) and enforces buffer discipline: every entry point checks channel
// counts and per-channel lengths before any state changes, so a shape
// mistake never corrupts a running stream. The stretch ratio is implicit in
// the buffer lengths passed to Process: rendering twice the input length
// halves playback speed at constant pitch.
//
//	st, err := ssstretch.Stereo(48000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := st.SetTransposeSemitones(3); err != nil {
//		log.Fatal(err)
//	}
//	if err := st.Process(inputs, outputs); err != nil {
//		log.Fatal(err)
//	}
//
// Instances are not safe for concurrent use; run one Stretcher per stream.
// The dsp subpackages (biquad, delay, fft, window, buffer, interp) stand on
// their own and are useful without a Stretcher.
package ssstretch
