// Package buffer provides planar (per-channel) float32 sample storage
// and conversions to and from interleaved layouts. Processing functions
// accept raw [][]float32 channel slices; Planar is an optional
// convenience that owns the allocation and keeps the equal-length
// invariant for callers who do not want to manage channel slices by
// hand.
package buffer
