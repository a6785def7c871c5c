package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-sonic/internal/pcm"
)

// readWAV decodes a PCM WAV file into mono 16-bit samples. Multi-channel
// input is averaged down to one channel.
func readWAV(path string) (samples []int16, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, errors.New("invalid WAV file")
	}
	format := decoder.Format()
	if format == nil {
		return nil, 0, errors.New("missing WAV format chunk")
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, 0, fmt.Errorf("unsupported WAV encoding %d, only integer PCM is supported", decoder.WavAudioFormat)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode samples: %w", err)
	}

	channels := format.NumChannels
	if channels < 1 {
		return nil, 0, fmt.Errorf("invalid channel count %d", channels)
	}

	mono, err := toMono16(buf.Data, channels, int(decoder.BitDepth))
	if err != nil {
		return nil, 0, err
	}
	return mono, format.SampleRate, nil
}

// writeWAV encodes samples as a mono 16-bit PCM WAV file.
func writeWAV(path string, samples []int16, sampleRate int) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePerms)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	encoder := wav.NewEncoder(f, sampleRate, outputBitDepth, 1, wavFormatPCM)
	if err := encoder.Write(pcm.NewIntBuffer(samples, sampleRate)); err != nil {
		return fmt.Errorf("failed to encode samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	return nil
}

// toMono16 averages interleaved frames and rescales them to 16 bits.
func toMono16(data []int, channels, bitDepth int) ([]int16, error) {
	convert, err := sampleConverter(bitDepth)
	if err != nil {
		return nil, err
	}

	frames := len(data) / channels
	out := make([]int, frames)
	for i := range frames {
		sum := 0
		for ch := range channels {
			sum += convert(data[i*channels+ch])
		}
		out[i] = sum / channels
	}
	return pcm.FromInts(out), nil
}

func sampleConverter(bitDepth int) (func(int) int, error) {
	switch bitDepth {
	case 8:
		return func(v int) int { return (v - unsigned8Offset) << shift8To16 }, nil
	case 16:
		return func(v int) int { return v }, nil
	case 24:
		return func(v int) int { return v >> shift24To16 }, nil
	case 32:
		return func(v int) int { return v >> shift32To16 }, nil
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}
