package sonic

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tphakala/go-audio-sonic/internal/engine"
)

// Quality selects the precision of pitch detection and of the pitch shift.
type Quality int

const (
	// QualityFast decimates the signal for pitch detection and uses linear
	// interpolation for the pitch shift. This is the default.
	QualityFast Quality = iota

	// QualityHigh searches pitch at full resolution and shifts pitch with
	// a windowed-sinc interpolator.
	QualityHigh
)

// String returns a human-readable name for the quality.
func (q Quality) String() string {
	return engine.Quality(q).String()
}

// Valid reports whether q is a known quality level.
func (q Quality) Valid() bool {
	return q == QualityFast || q == QualityHigh
}

// ParseQuality maps a name ("fast", "high") or a numeric level ("0", "1")
// to a Quality.
func ParseQuality(s string) (Quality, error) {
	switch s {
	case "fast", "0":
		return QualityFast, nil
	case "high", "1":
		return QualityHigh, nil
	default:
		return QualityFast, fmt.Errorf("%w: unknown quality %q", ErrInvalidArgument, s)
	}
}

// Common errors returned by the stream.
var (
	// ErrInvalidArgument indicates a parameter outside its accepted range
	// or otherwise invalid input to an operation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidChannels indicates an unsupported channel count. Errors
	// carrying it also match ErrInvalidArgument.
	ErrInvalidChannels = errors.New("invalid channel count")

	// ErrFormat indicates input bytes or buffers that do not hold whole
	// mono 16-bit samples.
	ErrFormat = errors.New("invalid sample format")

	// ErrAllocation indicates the stream's buffers cannot grow any further.
	ErrAllocation = errors.New("buffer allocation failed")

	// ErrClosed indicates use of a stream after Close.
	ErrClosed = errors.New("stream is closed")
)

// Config holds stream configuration.
type Config struct {
	// SampleRate is the sample rate of the audio in Hz.
	SampleRate int

	// Channels is the number of interleaved channels. Only 1 is supported.
	Channels int

	// Speed is the initial speed factor. Zero selects DefaultSpeed.
	Speed float64

	// Pitch is the initial pitch factor. Zero selects DefaultPitch.
	Pitch float64

	// Volume is the initial volume factor. Zero selects DefaultVolume
	// unless Mute is set.
	Volume float64

	// Mute starts the stream at volume 0.
	Mute bool

	// Quality is the initial quality level.
	Quality Quality

	// MaxBufferSamples caps each of the input and output buffers. Writes
	// that would exceed it fail with ErrAllocation. Zero selects one
	// minute of audio at SampleRate. It must exceed the look-ahead
	// reported in Info.MaxRequired.
	MaxBufferSamples int

	// MaxReadSamples caps a single ReadBytes call. Zero selects
	// DefaultMaxReadSamples.
	MaxReadSamples int

	// DisableSIMD forces the pure Go vector operations.
	DisableSIMD bool

	// Logger receives debug events. Nil disables logging.
	Logger *zap.Logger
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Channels != monoChannels {
		return fmt.Errorf("%w: %w: got %d, only mono is supported", ErrInvalidArgument, ErrInvalidChannels, c.Channels)
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive: %d", ErrInvalidArgument, c.SampleRate)
	}

	if c.Speed != 0 && !inRange(c.Speed, MinSpeed, MaxSpeed) {
		return fmt.Errorf("%w: speed %v out of range [%v, %v]", ErrInvalidArgument, c.Speed, MinSpeed, MaxSpeed)
	}

	if c.Pitch != 0 && !inRange(c.Pitch, MinPitch, MaxPitch) {
		return fmt.Errorf("%w: pitch %v out of range [%v, %v]", ErrInvalidArgument, c.Pitch, MinPitch, MaxPitch)
	}

	if !inRange(c.Volume, MinVolume, MaxVolume) {
		return fmt.Errorf("%w: volume %v out of range [%v, %v]", ErrInvalidArgument, c.Volume, MinVolume, MaxVolume)
	}

	if !c.Quality.Valid() {
		return fmt.Errorf("%w: unknown quality %d", ErrInvalidArgument, c.Quality)
	}

	if c.MaxBufferSamples < 0 {
		return fmt.Errorf("%w: max buffer samples must not be negative", ErrInvalidArgument)
	}

	if c.MaxReadSamples < 0 {
		return fmt.Errorf("%w: max read samples must not be negative", ErrInvalidArgument)
	}

	return nil
}

// Info describes a stream's processing setup.
type Info struct {
	// Algorithm describes the transform in use.
	Algorithm string

	// MinPeriod and MaxPeriod bound the pitch period search, in samples.
	MinPeriod int
	MaxPeriod int

	// MaxRequired is the look-ahead the transform needs per step.
	MaxRequired int

	// Latency is the worst-case number of samples held back before they
	// can be read.
	Latency int

	// MaxBufferSamples is the per-buffer capacity limit.
	MaxBufferSamples int

	// MemoryUsage is the approximate memory usage in bytes.
	MemoryUsage int64

	// SIMDEnabled indicates if SIMD optimizations are active.
	SIMDEnabled bool

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// inRange reports whether v lies in [lo, hi]. NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
