package engine

// Pitch period search range
const (
	// Highest and lowest fundamental frequencies the period search covers.
	maxPitchHz = 400
	minPitchHz = 65

	// Rate at which FAST quality decimates the signal for the coarse search.
	amdfFrequency = 4000

	// Refinement window around the coarse estimate, in decimation steps.
	refineSteps = 4
)

// Speed thresholds
const (
	// Effective speeds this close to 1.0 copy input straight through.
	unitySpeedTolerance = 1e-5

	// At or above this speed a whole period is skipped per step without
	// a following copy run.
	doubleSpeed = 2.0

	// Below this speed a period is repeated with a shortened cross-fade.
	halfSpeed = 0.5
)

// Rate stage
const (
	// Sample rate ratios are halved until both fit this bound to keep the
	// position arithmetic well inside int range.
	maxRateUnits = 1 << 14

	// Linear interpolation needs the current and the next sample.
	linearHalfTaps = 1

	// Windowed-sinc kernel geometry for HIGH quality.
	sincHalfTaps    = 8
	sincNumPhases   = 256
	sincAttenuation = 80.0 // dB
	sincCutoff      = 0.5  // input Nyquist, scaled down when the rate exceeds 1
)

// PCM limits
const (
	maxSample = 32767
	minSample = -32768
)

// Byte sizes for memory estimates.
const (
	bytesPerInt16   = 2
	bytesPerFloat64 = 8
	bytesPerInt     = 8
)
