package ssstretch

import (
	"fmt"

	"github.com/bmisiak/ssstretch/dsp/buffer"
)

// ProcessTo renders outputLen samples per channel into freshly allocated
// buffers. It is the dynamic-buffer convenience path and allocates on every
// call; use Process with caller-owned buffers for allocation-free
// streaming.
func (s *Stretcher) ProcessTo(inputs [][]float32, outputLen int) ([][]float32, error) {
	out, err := s.newPlanar(outputLen)
	if err != nil {
		return nil, err
	}

	if err := s.Process(inputs, out.Channels()); err != nil {
		return nil, err
	}

	return out.Channels(), nil
}

// FlushTo drains the processing tail into freshly allocated buffers of
// outputLen samples per channel.
func (s *Stretcher) FlushTo(outputLen int) ([][]float32, error) {
	out, err := s.newPlanar(outputLen)
	if err != nil {
		return nil, err
	}

	if err := s.Flush(out.Channels()); err != nil {
		return nil, err
	}

	return out.Channels(), nil
}

// ProcessInterleaved streams frame-interleaved samples, deinterleaving into
// scratch planar buffers around Process. Both lengths must be multiples of
// the channel count. This path allocates; it exists for callers whose I/O
// is interleaved, such as go-audio buffers.
func (s *Stretcher) ProcessInterleaved(input, output []float32) error {
	in, err := s.planarFromInterleaved(input, "input")
	if err != nil {
		return err
	}

	out, err := s.planarForInterleaved(len(output), "output")
	if err != nil {
		return err
	}

	if err := s.Process(in.Channels(), out.Channels()); err != nil {
		return err
	}

	return out.Interleaved(output)
}

// FlushInterleaved drains the processing tail into a frame-interleaved
// buffer whose length must be a multiple of the channel count.
func (s *Stretcher) FlushInterleaved(output []float32) error {
	out, err := s.planarForInterleaved(len(output), "output")
	if err != nil {
		return err
	}

	if err := s.Flush(out.Channels()); err != nil {
		return err
	}

	return out.Interleaved(output)
}

func (s *Stretcher) newPlanar(length int) (*buffer.Planar, error) {
	if length < 0 {
		return nil, fmt.Errorf("stretcher: output length must be >= 0: %d: %w",
			length, ErrInvalidParam)
	}

	return buffer.New(s.channels, length)
}

func (s *Stretcher) planarFromInterleaved(src []float32, role string) (*buffer.Planar, error) {
	p, err := s.planarForInterleaved(len(src), role)
	if err != nil {
		return nil, err
	}

	if err := p.SetInterleaved(src); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Stretcher) planarForInterleaved(length int, role string) (*buffer.Planar, error) {
	if length%s.channels != 0 {
		return nil, fmt.Errorf("stretcher: interleaved %s length %d is not a multiple of %d channels: %w",
			role, length, s.channels, ErrLengthMismatch)
	}

	return buffer.New(s.channels, length/s.channels)
}
