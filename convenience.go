package sonic

import (
	"fmt"
)

// Transform runs samples through a new stream built from config and
// returns the complete output, flushed.
//
// Input is fed in chunks and output drained after each one, so the input
// may be longer than the stream's buffer limit.
func Transform(samples []int16, config *Config) ([]int16, error) {
	s, err := New(config)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	// Input left pending after a write is always below the look-ahead, so
	// every chunk fits beside it.
	chunk := min(transformChunkSize, s.input.Limit()-s.engine.MaxRequired())
	output := make([]int16, 0, estimateOutputSize(len(samples), s.speed))
	for i := 0; i < len(samples); i += chunk {
		end := min(i+chunk, len(samples))
		if err := s.Write(samples[i:end]); err != nil {
			return nil, fmt.Errorf("failed to write samples %d-%d: %w", i, end, err)
		}
		output = drain(s, output)
	}

	if _, err := s.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush: %w", err)
	}
	return drain(s, output), nil
}

// drain appends all ready samples to dst.
func drain(s *Stream, dst []int16) []int16 {
	for s.SamplesAvailable() > 0 {
		out, err := s.Read(s.SamplesAvailable())
		if err != nil {
			break
		}
		dst = append(dst, out...)
	}
	return dst
}

func estimateOutputSize(n int, speed float64) int {
	return int(float64(n)/speed) + transformChunkSize
}

// ChangeSpeed is a convenience function for changing speed without
// changing pitch.
func ChangeSpeed(samples []int16, sampleRate int, speed float64) ([]int16, error) {
	if !inRange(speed, MinSpeed, MaxSpeed) {
		return nil, fmt.Errorf("%w: speed %v out of range [%v, %v]", ErrInvalidArgument, speed, MinSpeed, MaxSpeed)
	}
	return Transform(samples, &Config{
		SampleRate: sampleRate,
		Channels:   monoChannels,
		Speed:      speed,
	})
}

// ChangePitch is a convenience function for changing pitch without
// changing duration.
func ChangePitch(samples []int16, sampleRate int, pitch float64) ([]int16, error) {
	if !inRange(pitch, MinPitch, MaxPitch) {
		return nil, fmt.Errorf("%w: pitch %v out of range [%v, %v]", ErrInvalidArgument, pitch, MinPitch, MaxPitch)
	}
	return Transform(samples, &Config{
		SampleRate: sampleRate,
		Channels:   monoChannels,
		Pitch:      pitch,
		Quality:    QualityHigh,
	})
}

// ChangeVolume is a convenience function for scaling amplitude. Results
// saturate at the int16 limits.
func ChangeVolume(samples []int16, sampleRate int, volume float64) ([]int16, error) {
	return Transform(samples, &Config{
		SampleRate: sampleRate,
		Channels:   monoChannels,
		Volume:     volume,
		Mute:       volume == 0,
	})
}
