package sonic

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tphakala/go-audio-sonic/internal/engine"
	"github.com/tphakala/go-audio-sonic/internal/pipeline"
	"github.com/tphakala/go-audio-sonic/internal/simdops"
)

// Stream changes the speed, pitch and volume of a mono 16-bit sample
// stream. Samples are pushed with Write and pulled with Read; Flush forces
// out whatever the transform is still holding.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	sampleRate     int
	maxReadSamples int
	simd           bool

	speed   float64
	pitch   float64
	volume  float64
	quality Quality

	input  *pipeline.Buffer[int16]
	output *pipeline.Buffer[int16]
	engine *engine.Engine

	logger *zap.Logger
	closed bool
}

// NewStream creates a stream with default parameters. channels must be 1.
func NewStream(sampleRate, channels int) (*Stream, error) {
	return New(&Config{SampleRate: sampleRate, Channels: channels})
}

// New creates a stream with the specified configuration.
func New(config *Config) (*Stream, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidArgument)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Stream{
		sampleRate:     config.SampleRate,
		maxReadSamples: config.MaxReadSamples,
		simd:           !config.DisableSIMD,
		speed:          orDefault(config.Speed, DefaultSpeed),
		pitch:          orDefault(config.Pitch, DefaultPitch),
		volume:         orDefault(config.Volume, DefaultVolume),
		quality:        config.Quality,
		logger:         config.Logger,
	}
	if config.Mute {
		s.volume = 0
	}
	if s.maxReadSamples == 0 {
		s.maxReadSamples = DefaultMaxReadSamples
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.Named("sonic")

	ops := simdops.Default()
	if config.DisableSIMD {
		ops = simdops.Generic()
	}

	e, err := engine.New(s.sampleRate, s.params(), ops)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	s.engine = e

	maxBuffer := config.MaxBufferSamples
	if maxBuffer == 0 {
		maxBuffer = config.SampleRate * defaultBufferSeconds
	}
	// The tempo stage holds back up to MaxRequired samples, so a smaller
	// limit could never accept another write.
	if maxBuffer <= e.MaxRequired() {
		return nil, fmt.Errorf("%w: max buffer samples %d must exceed the look-ahead of %d samples at %d Hz",
			ErrInvalidArgument, maxBuffer, e.MaxRequired(), s.sampleRate)
	}

	// Output is bounded by the check in Write so a single run never fails
	// half way through.
	s.input = pipeline.NewBuffer[int16](min(initialBufferSamples, maxBuffer), maxBuffer)
	s.output = pipeline.NewBuffer[int16](min(initialBufferSamples, maxBuffer), 0)

	s.logger.Debug("stream created",
		zap.Int("sample_rate", s.sampleRate),
		zap.Float64("speed", s.speed),
		zap.Float64("pitch", s.pitch),
		zap.Float64("volume", s.volume),
		zap.Stringer("quality", s.quality),
		zap.Int("max_buffer_samples", maxBuffer))

	return s, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func (s *Stream) params() engine.Params {
	return engine.Params{
		Speed:   s.speed,
		Pitch:   s.pitch,
		Volume:  s.volume,
		Quality: engine.Quality(s.quality),
	}
}

// update applies p to the engine and commits it on success.
func (s *Stream) update(name string, p engine.Params) error {
	if err := s.engine.SetParams(p); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArgument, name, err)
	}

	s.speed = p.Speed
	s.pitch = p.Pitch
	s.volume = p.Volume
	s.quality = Quality(p.Quality)

	s.logger.Debug("parameter changed",
		zap.String("name", name),
		zap.Float64("speed", s.speed),
		zap.Float64("pitch", s.pitch),
		zap.Float64("volume", s.volume),
		zap.Stringer("quality", s.quality))
	return nil
}

// SetSpeed sets the speed factor in [MinSpeed, MaxSpeed]. 2.0 plays twice
// as fast without changing pitch. On error the speed is unchanged.
func (s *Stream) SetSpeed(speed float64) error {
	if s.closed {
		return ErrClosed
	}
	if !inRange(speed, MinSpeed, MaxSpeed) {
		return fmt.Errorf("%w: speed %v out of range [%v, %v]", ErrInvalidArgument, speed, MinSpeed, MaxSpeed)
	}

	p := s.params()
	p.Speed = speed
	return s.update("speed", p)
}

// SetPitch sets the pitch factor in [MinPitch, MaxPitch]. 2.0 raises the
// pitch an octave without changing duration. On error the pitch is
// unchanged.
func (s *Stream) SetPitch(pitch float64) error {
	if s.closed {
		return ErrClosed
	}
	if !inRange(pitch, MinPitch, MaxPitch) {
		return fmt.Errorf("%w: pitch %v out of range [%v, %v]", ErrInvalidArgument, pitch, MinPitch, MaxPitch)
	}

	p := s.params()
	p.Pitch = pitch
	return s.update("pitch", p)
}

// SetVolume sets the volume factor in [MinVolume, MaxVolume]. Scaled
// samples saturate at the int16 limits. On error the volume is unchanged.
func (s *Stream) SetVolume(volume float64) error {
	if s.closed {
		return ErrClosed
	}
	if !inRange(volume, MinVolume, MaxVolume) {
		return fmt.Errorf("%w: volume %v out of range [%v, %v]", ErrInvalidArgument, volume, MinVolume, MaxVolume)
	}

	p := s.params()
	p.Volume = volume
	return s.update("volume", p)
}

// SetQuality sets the quality level. On error the quality is unchanged.
func (s *Stream) SetQuality(quality Quality) error {
	if s.closed {
		return ErrClosed
	}
	if !quality.Valid() {
		return fmt.Errorf("%w: unknown quality %d", ErrInvalidArgument, quality)
	}

	p := s.params()
	p.Quality = engine.Quality(quality)
	return s.update("quality", p)
}

// GetSpeed returns the current speed factor.
func (s *Stream) GetSpeed() float64 { return s.speed }

// GetPitch returns the current pitch factor.
func (s *Stream) GetPitch() float64 { return s.pitch }

// GetVolume returns the current volume factor.
func (s *Stream) GetVolume() float64 { return s.volume }

// GetQuality returns the current quality level.
func (s *Stream) GetQuality() Quality { return s.quality }

// GetSampleRate returns the sample rate the stream was created with.
func (s *Stream) GetSampleRate() int { return s.sampleRate }

// GetChannels returns the channel count, always 1.
func (s *Stream) GetChannels() int { return monoChannels }

// Write appends samples to the stream and transforms as much as possible.
// Writing nothing is a no-op. If the buffers cannot take the samples the
// stream is left unchanged and ErrAllocation is returned.
func (s *Stream) Write(samples []int16) error {
	if s.closed {
		return ErrClosed
	}
	if len(samples) == 0 {
		return nil
	}

	if s.output.Len() >= s.input.Limit() {
		return fmt.Errorf("%w: %d samples waiting to be read", ErrAllocation, s.output.Len())
	}
	if err := s.input.Write(samples); err != nil {
		if errors.Is(err, pipeline.ErrCapacity) {
			return fmt.Errorf("%w: %w", ErrAllocation, err)
		}
		return err
	}

	// Output is unbounded; this cannot fail.
	_ = s.output.Write(s.engine.Process(s.input))
	return nil
}

// Read removes and returns up to maxCount transformed samples, in order.
// It returns an empty slice when nothing is ready. Read never transforms.
func (s *Stream) Read(maxCount int) ([]int16, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if maxCount < 1 {
		return nil, fmt.Errorf("%w: read count must be at least 1, got %d", ErrInvalidArgument, maxCount)
	}

	return s.output.Read(maxCount), nil
}

// ReadInto removes up to len(dst) transformed samples into dst and returns
// the number copied.
func (s *Stream) ReadInto(dst []int16) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(dst) < 1 {
		return 0, fmt.Errorf("%w: destination is empty", ErrInvalidArgument)
	}

	return s.output.ReadInto(dst), nil
}

// SamplesAvailable returns the number of samples ready to be read.
func (s *Stream) SamplesAvailable() int {
	if s.closed {
		return 0
	}
	return s.output.Len()
}

// Flush pushes every held sample through the transform so it becomes
// readable. It reports whether any output was produced; with nothing held
// it returns false and changes nothing. The stream stays usable.
func (s *Stream) Flush() (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	if !s.engine.Holding(s.input) {
		return false, nil
	}

	pending := s.input.Len()
	out := s.engine.Flush(s.input)
	_ = s.output.Write(out)

	s.logger.Debug("flushed",
		zap.Int("pending", pending),
		zap.Int("produced", len(out)))
	return len(out) > 0, nil
}

// Reset discards buffered input and output and all transform state while
// keeping the parameters.
func (s *Stream) Reset() {
	if s.closed {
		return
	}
	s.input.Clear()
	s.output.Clear()
	s.engine.Reset()
}

// Close releases the stream's buffers. Calling Close more than once is
// safe. Getters keep working after Close; everything else returns
// ErrClosed.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.input.Release()
	s.output.Release()
	s.engine.Reset()

	s.logger.Debug("stream closed")
	return nil
}

// GetLatency returns the worst-case number of samples held back before
// they can be read.
func (s *Stream) GetLatency() int {
	return s.engine.GetLatency()
}

// GetInfo returns information about the stream's processing setup.
func (s *Stream) GetInfo() Info {
	info := Info{
		Algorithm:        "pitch-synchronous overlap-add, " + s.quality.String() + " rate conversion",
		MinPeriod:        s.engine.MinPeriod(),
		MaxPeriod:        s.engine.MaxPeriod(),
		MaxRequired:      s.engine.MaxRequired(),
		Latency:          s.engine.GetLatency(),
		MaxBufferSamples: s.input.Limit(),
		MemoryUsage:      s.engine.GetMemoryUsage(),
		SIMDEnabled:      s.simd,
		SIMDType:         "none",
	}

	if !s.closed {
		info.MemoryUsage += int64(s.input.Capacity()+s.output.Capacity()) * bytesPerInt16
	}
	if s.simd {
		info.SIMDType = simdops.Info()
	}
	return info
}
