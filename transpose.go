package ssstretch

import "math"

// SemitonesToFactor converts a pitch offset in semitones to a frequency
// multiplier: 2^(semitones/12).
func SemitonesToFactor(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// FactorToSemitones converts a frequency multiplier back to semitones.
func FactorToSemitones(factor float64) float64 {
	return 12 * math.Log2(factor)
}
