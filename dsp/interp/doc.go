// Package interp provides fractional interpolation kernels shared by
// delay-based and granular DSP blocks.
//
// Available kernels, from cheapest to highest quality:
//
//   - [Linear]:   2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (good default)
//
// All kernels take the fractional position t in [0, 1] between the two
// center samples.
package interp
