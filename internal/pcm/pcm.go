// Package pcm converts between signed 16-bit little-endian PCM bytes,
// int16 samples and go-audio buffers.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

// Sample format constants
const (
	BytesPerSample = 2
	BitDepth       = 16

	monoChannels = 1
	maxInt16     = 32767
	minInt16     = -32768
)

// ErrOddLength is returned when a byte sequence does not hold a whole
// number of samples.
var ErrOddLength = errors.New("byte length is not a multiple of the sample size")

// Decode interprets p as little-endian int16 samples.
func Decode(p []byte) ([]int16, error) {
	if len(p)%BytesPerSample != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddLength, len(p))
	}

	samples := make([]int16, len(p)/BytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(p[i*BytesPerSample:]))
	}
	return samples, nil
}

// Encode returns samples as little-endian bytes.
func Encode(samples []int16) []byte {
	return AppendEncode(make([]byte, 0, len(samples)*BytesPerSample), samples)
}

// AppendEncode appends samples to dst as little-endian bytes.
func AppendEncode(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}

// FromInts narrows int samples to int16, saturating out-of-range values.
func FromInts(data []int) []int16 {
	samples := make([]int16, len(data))
	for i, v := range data {
		samples[i] = clamp(v)
	}
	return samples
}

// NewIntBuffer wraps samples in a mono 16-bit go-audio buffer.
func NewIntBuffer(samples []int16, sampleRate int) *audio.IntBuffer {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: monoChannels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: BitDepth,
	}
}

// CheckIntBuffer verifies that buf is a mono buffer at sampleRate.
func CheckIntBuffer(buf *audio.IntBuffer, sampleRate int) error {
	if buf == nil {
		return errors.New("nil buffer")
	}
	if buf.Format == nil {
		return errors.New("buffer has no format")
	}
	if buf.Format.NumChannels != monoChannels {
		return fmt.Errorf("expected mono buffer, got %d channels", buf.Format.NumChannels)
	}
	if buf.Format.SampleRate != sampleRate {
		return fmt.Errorf("buffer sample rate %d does not match stream rate %d", buf.Format.SampleRate, sampleRate)
	}
	return nil
}

func clamp(v int) int16 {
	switch {
	case v > maxInt16:
		return maxInt16
	case v < minInt16:
		return minInt16
	default:
		return int16(v)
	}
}
