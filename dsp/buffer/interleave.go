package buffer

import "fmt"

// Interleave writes the planar channels in src to dst in frame-major
// order (frame 0 of every channel, then frame 1, ...). All channels in
// src must have the same length and dst must hold exactly
// len(src)*len(src[0]) samples.
func Interleave(dst []float32, src [][]float32) error {
	channels, length, err := planarShape(src)
	if err != nil {
		return err
	}

	if len(dst) != channels*length {
		return fmt.Errorf("buffer interleaved length %d does not match %d channels of %d samples", len(dst), channels, length)
	}

	for ch, c := range src {
		for i, v := range c {
			dst[i*channels+ch] = v
		}
	}

	return nil
}

// Deinterleave splits the frame-major samples in src into the planar
// channels of dst. All channels in dst must have the same length and
// src must hold exactly len(dst)*len(dst[0]) samples.
func Deinterleave(dst [][]float32, src []float32) error {
	channels, length, err := planarShape(dst)
	if err != nil {
		return err
	}

	if len(src) != channels*length {
		return fmt.Errorf("buffer interleaved length %d does not match %d channels of %d samples", len(src), channels, length)
	}

	for ch, c := range dst {
		for i := range c {
			c[i] = src[i*channels+ch]
		}
	}

	return nil
}

// Interleaved writes the buffer's contents to dst in frame-major order.
func (p *Planar) Interleaved(dst []float32) error {
	return Interleave(dst, p.channels)
}

// SetInterleaved fills the buffer from frame-major samples.
func (p *Planar) SetInterleaved(src []float32) error {
	return Deinterleave(p.channels, src)
}

func planarShape(chans [][]float32) (channels, length int, err error) {
	if len(chans) == 0 {
		return 0, 0, fmt.Errorf("buffer channel count must be > 0: %d", len(chans))
	}

	length = len(chans[0])
	for ch, c := range chans[1:] {
		if len(c) != length {
			return 0, 0, fmt.Errorf("buffer channel %d length %d does not match channel 0 length %d", ch+1, len(c), length)
		}
	}

	return len(chans), length, nil
}
