package sonic

import (
	"fmt"

	"github.com/go-audio/audio"

	"github.com/tphakala/go-audio-sonic/internal/pcm"
)

// WriteBytes decodes p as little-endian signed 16-bit samples and writes
// them. A length that is not a multiple of two fails with ErrFormat before
// anything is written.
func (s *Stream) WriteBytes(p []byte) error {
	if s.closed {
		return ErrClosed
	}

	samples, err := pcm.Decode(p)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return s.Write(samples)
}

// ReadBytes removes up to maxCount samples and returns them as
// little-endian bytes, two per sample. maxCount must lie in
// [1, MaxReadSamples].
func (s *Stream) ReadBytes(maxCount int) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if maxCount < 1 || maxCount > s.maxReadSamples {
		return nil, fmt.Errorf("%w: read count %d out of range [1, %d]", ErrInvalidArgument, maxCount, s.maxReadSamples)
	}

	return pcm.Encode(s.output.Read(maxCount)), nil
}

// GetMaxReadSamples returns the largest count ReadBytes accepts.
func (s *Stream) GetMaxReadSamples() int {
	return s.maxReadSamples
}

// WriteIntBuffer writes a mono go-audio buffer at the stream's sample
// rate. Values outside the int16 range saturate.
func (s *Stream) WriteIntBuffer(buf *audio.IntBuffer) error {
	if s.closed {
		return ErrClosed
	}
	if err := pcm.CheckIntBuffer(buf, s.sampleRate); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return s.Write(pcm.FromInts(buf.Data))
}

// ReadIntBuffer removes up to maxCount samples and returns them as a mono
// 16-bit go-audio buffer.
func (s *Stream) ReadIntBuffer(maxCount int) (*audio.IntBuffer, error) {
	samples, err := s.Read(maxCount)
	if err != nil {
		return nil, err
	}
	return pcm.NewIntBuffer(samples, s.sampleRate), nil
}
