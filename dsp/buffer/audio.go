package buffer

import (
	"fmt"

	"github.com/go-audio/audio"
)

// FromFloat32Buffer deinterleaves a go-audio Float32Buffer into a new
// Planar. The buffer must carry a format with a positive channel count
// and its data length must be a whole number of frames.
func FromFloat32Buffer(buf *audio.Float32Buffer) (*Planar, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("buffer audio source must have a format")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("buffer channel count must be > 0: %d", channels)
	}

	if len(buf.Data)%channels != 0 {
		return nil, fmt.Errorf("buffer interleaved length %d is not a multiple of %d channels", len(buf.Data), channels)
	}

	p, err := New(channels, len(buf.Data)/channels)
	if err != nil {
		return nil, err
	}

	if err := p.SetInterleaved(buf.Data); err != nil {
		return nil, err
	}

	return p, nil
}

// Float32Buffer interleaves the buffer's contents into a new go-audio
// Float32Buffer with the given sample rate.
func (p *Planar) Float32Buffer(sampleRate int) *audio.Float32Buffer {
	data := make([]float32, len(p.channels)*p.length)
	_ = p.Interleaved(data)

	return &audio.Float32Buffer{
		Format: &audio.Format{
			NumChannels: len(p.channels),
			SampleRate:  sampleRate,
		},
		Data: data,
	}
}
