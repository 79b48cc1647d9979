// Package biquad implements a second-order IIR filter with selectable
// design methods.
//
// A Filter owns five float64 coefficients (b0, b1, b2, a1, a2,
// normalized so a0 = 1) and a 4-tap direct-form-I history. Samples are
// float32 at the API edge; arithmetic runs in float64. Frequencies are
// normalized to cycles per sample (Hz divided by sample rate) and must
// lie strictly between 0 and 0.5.
//
// Eight shapes are available: Lowpass, Highpass, Bandpass, Notch, Peak,
// LowShelf, HighShelf and Allpass. Lowpass, Highpass and Allpass take a
// quality factor Q; the remaining shapes take a bandwidth in octaves.
// Peak and the shelves additionally take a gain in decibels.
//
// Each shape accepts an optional design method via WithDesign:
//
//   - DesignCookbook (default): the audio-EQ-cookbook formulas, with
//     the cookbook's bandwidth pre-warp.
//   - DesignBilinear: the same prototypes without bandwidth pre-warp;
//     octave bandwidths compress toward Nyquist.
//   - DesignOneSided: places the upper band edge exactly on the warped
//     frequency axis; useful for shelves close to Nyquist.
//   - DesignVicanek: matched-z poles with magnitude-matched zeros,
//     after Vicanek, "Matched Second Order Digital Filters" (2016).
//     Shapes without a matched derivation (shelves, allpass) fall back
//     to DesignOneSided.
//
// Redesigning a live filter replaces the coefficients but leaves the
// history untouched, so the shape can change without a state-reset
// click. Reset clears the history and keeps the coefficients.
package biquad
