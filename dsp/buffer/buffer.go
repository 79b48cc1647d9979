package buffer

import "fmt"

// Planar owns C equal-length float32 channel buffers backed by a single
// contiguous allocation. The zero value is not usable; construct via
// New, FromChannels, or FromFloat32Buffer.
type Planar struct {
	data     []float32
	channels [][]float32
	length   int
}

// New returns a zero-filled Planar with the given channel count and
// per-channel length.
func New(channels, length int) (*Planar, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("buffer channel count must be > 0: %d", channels)
	}
	if length < 0 {
		return nil, fmt.Errorf("buffer length must be >= 0: %d", length)
	}

	data := make([]float32, channels*length)

	chans := make([][]float32, channels)
	for ch := range chans {
		chans[ch] = data[ch*length : (ch+1)*length : (ch+1)*length]
	}

	return &Planar{data: data, channels: chans, length: length}, nil
}

// FromChannels wraps existing per-channel slices without copying.
// Mutations to the slices are visible through the Planar and vice versa.
// All channels must have the same length.
func FromChannels(chans [][]float32) (*Planar, error) {
	if len(chans) == 0 {
		return nil, fmt.Errorf("buffer channel count must be > 0: %d", len(chans))
	}

	length := len(chans[0])
	for ch, c := range chans[1:] {
		if len(c) != length {
			return nil, fmt.Errorf("buffer channel %d length %d does not match channel 0 length %d", ch+1, len(c), length)
		}
	}

	return &Planar{channels: chans, length: length}, nil
}

// Channels returns the per-channel slices. The slices alias the
// Planar's storage; processing functions consume this directly.
func (p *Planar) Channels() [][]float32 {
	return p.channels
}

// Channel returns channel ch.
func (p *Planar) Channel(ch int) []float32 {
	return p.channels[ch]
}

// NumChannels returns the channel count.
func (p *Planar) NumChannels() int {
	return len(p.channels)
}

// Len returns the per-channel sample count.
func (p *Planar) Len() int {
	return p.length
}

// Zero sets all samples in all channels to 0.
func (p *Planar) Zero() {
	for _, c := range p.channels {
		for i := range c {
			c[i] = 0
		}
	}
}

// Copy returns a deep copy of the buffer.
func (p *Planar) Copy() *Planar {
	out, _ := New(len(p.channels), p.length)
	for ch, c := range p.channels {
		copy(out.channels[ch], c)
	}

	return out
}
