package ssstretch

import "errors"

// Sentinel error kinds. Validation failures wrap one of these so callers
// can classify them with errors.Is; the wrapped message names the offending
// channel index and lengths.
var (
	// ErrChannelCount reports a buffer set whose channel count does not
	// match the stretcher.
	ErrChannelCount = errors.New("channel count mismatch")

	// ErrLengthMismatch reports per-channel buffers of unequal length, or
	// an interleaved buffer whose length is not a channel multiple.
	ErrLengthMismatch = errors.New("buffer length mismatch")

	// ErrInvalidConfig reports construction-time settings that cannot
	// produce a working stretcher.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidParam reports an out-of-range runtime parameter such as a
	// tonality limit outside [0, 1].
	ErrInvalidParam = errors.New("parameter out of range")
)
