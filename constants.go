package sonic

// Parameter ranges, inclusive at both ends
const (
	MinSpeed = 0.2
	MaxSpeed = 6.0

	MinPitch = 0.2
	MaxPitch = 6.0

	MinVolume = 0.0
	MaxVolume = 2.0
)

// Defaults
const (
	DefaultSpeed  = 1.0
	DefaultPitch  = 1.0
	DefaultVolume = 1.0

	// DefaultMaxReadSamples caps a single byte-level read.
	DefaultMaxReadSamples = 22050

	// Buffers may hold up to this many seconds of audio by default.
	defaultBufferSeconds = 60
)

// Channel constants
const (
	monoChannels = 1 // The only supported channel count
)

// Buffer constants
const (
	initialBufferSamples = 4096 // Initial buffer capacity in samples
	transformChunkSize   = 8192 // Chunk size used by the one-shot helpers
	bytesPerInt16        = 2
)
