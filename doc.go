// Package sonic changes the speed, pitch and volume of mono 16-bit audio
// as a stream, in pure Go.
//
// # Features
//
//   - Speed change without pitch change (0.2x to 6x)
//   - Pitch change without duration change (0.2x to 6x)
//   - Volume scaling with saturation (0 to 2x)
//   - Two quality levels trading CPU for pitch detection and
//     interpolation precision
//   - Streaming API: push samples, pull results, flush at the end
//   - Optional SIMD acceleration via github.com/tphakala/simd
//
// # Quick Start
//
// For one-shot processing:
//
//	faster, err := sonic.ChangeSpeed(samples, 16000, 1.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming:
//
//	s, err := sonic.NewStream(16000, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	_ = s.SetSpeed(2.0)
//	for chunk := range chunks {
//	    if err := s.Write(chunk); err != nil {
//	        log.Fatal(err)
//	    }
//	    for s.SamplesAvailable() > 0 {
//	        out, _ := s.Read(4096)
//	        play(out)
//	    }
//	}
//
//	// Push out what the transform is still holding
//	if _, err := s.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Algorithm
//
// Speed is changed by pitch-synchronous overlap-add: the pitch period at
// the current position is found with an average magnitude difference
// search, then one period is either skipped or repeated, cross-fading
// linearly across the seam. Pitch is changed by running that step at
// speed/pitch and resampling the result by 1/pitch. Volume is applied last.
//
//   - [QualityFast]: pitch search on a signal decimated to about 4 kHz,
//     refined at full rate; linear interpolation for resampling.
//   - [QualityHigh]: pitch search at full rate; 16-tap Kaiser-windowed sinc
//     interpolation for resampling.
//
// The transform needs look-ahead, so output lags input by up to
// [Stream.GetLatency] samples until [Stream.Flush] is called.
//
// # Byte Interface
//
// [Stream.WriteBytes] and [Stream.ReadBytes] exchange little-endian signed
// 16-bit PCM. [Stream.WriteIntBuffer] and [Stream.ReadIntBuffer] exchange
// github.com/go-audio/audio buffers.
//
// # Errors
//
// Every operation is all-or-nothing: on error the stream is unchanged.
// Errors match one of [ErrInvalidArgument], [ErrFormat], [ErrAllocation] or
// [ErrClosed] with errors.Is.
//
// # Thread Safety
//
// A [Stream] is not safe for concurrent use. Calls on one stream must be
// serialized; separate streams are independent.
package sonic
