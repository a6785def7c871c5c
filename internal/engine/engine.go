// Package engine implements the speed, pitch and volume transform applied
// to a mono 16-bit sample stream.
//
// Processing runs in three stages:
//   - Tempo: pitch-synchronous overlap-add. A pitch period is detected with
//     an AMDF search and then either skipped or repeated with a linear
//     cross-fade, changing duration without changing pitch.
//   - Rate: resamples the tempo output by 1/pitch, shifting pitch and
//     restoring the duration the tempo stage compensated for. FAST quality
//     interpolates linearly, HIGH quality uses a Kaiser-windowed sinc kernel.
//   - Volume: scales, rounds and clamps to the int16 range.
//
// The tempo stage runs at speed/pitch so that speed and pitch stay
// independent.
package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-sonic/internal/pipeline"
	"github.com/tphakala/go-audio-sonic/internal/simdops"
)

// Quality selects the precision of pitch detection and rate conversion.
type Quality int

const (
	// QualityFast decimates the signal for pitch detection and interpolates
	// linearly in the rate stage.
	QualityFast Quality = iota

	// QualityHigh searches pitch at full resolution and interpolates with
	// a windowed-sinc kernel.
	QualityHigh
)

// String returns a human-readable name for the quality.
func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// Params holds the transform parameters.
type Params struct {
	Speed   float64
	Pitch   float64
	Volume  float64
	Quality Quality
}

// Validate checks that the parameters can drive the engine. Range policy
// is left to the caller.
func (p *Params) Validate() error {
	if !(p.Speed > 0) || math.IsInf(p.Speed, 0) {
		return fmt.Errorf("speed must be positive and finite: %v", p.Speed)
	}
	if !(p.Pitch > 0) || math.IsInf(p.Pitch, 0) {
		return fmt.Errorf("pitch must be positive and finite: %v", p.Pitch)
	}
	if !(p.Volume >= 0) || math.IsInf(p.Volume, 0) {
		return fmt.Errorf("volume must be non-negative and finite: %v", p.Volume)
	}
	if p.Quality != QualityFast && p.Quality != QualityHigh {
		return fmt.Errorf("unknown quality: %d", p.Quality)
	}
	return nil
}

// Engine transforms a stream of samples. It holds the look-ahead needed by
// the tempo stage in the caller's input buffer and its own rate history.
// Engine is not safe for concurrent use.
type Engine struct {
	sampleRate int
	params     Params

	tempo  *tempoStage
	rate   *rateStage
	volume *volumeStage

	// Scratch reused between runs.
	tempoOut []int16
	rateOut  []float64
	out      []int16
}

// New creates an engine for the given sample rate. A nil ops selects the
// SIMD implementation.
func New(sampleRate int, params Params, ops *simdops.Ops) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive: %d", sampleRate)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if ops == nil {
		ops = simdops.Default()
	}

	rate, err := newRateStage(sampleRate, params.Pitch, params.Quality, ops)
	if err != nil {
		return nil, err
	}

	return &Engine{
		sampleRate: sampleRate,
		params:     params,
		tempo:      newTempoStage(sampleRate),
		rate:       rate,
		volume:     newVolumeStage(ops),
	}, nil
}

// SetParams replaces the parameters. They apply to the next run; samples
// already returned are never revisited.
func (e *Engine) SetParams(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := e.rate.configure(params.Pitch, params.Quality); err != nil {
		return err
	}
	e.params = params
	return nil
}

// tempoSpeed is the speed the tempo stage runs at.
func (e *Engine) tempoSpeed() float64 {
	return e.params.Speed / e.params.Pitch
}

// Process consumes as much of input as the stages can handle and returns
// the samples produced. Unconsumed input stays in the buffer as look-ahead.
// The returned slice is only valid until the next call.
func (e *Engine) Process(input *pipeline.Buffer[int16]) []int16 {
	e.tempoOut = e.tempoOut[:0]

	var consumed int
	consumed, e.tempoOut = e.tempo.process(input.Samples(), e.tempoSpeed(), e.params.Quality, e.tempoOut)
	input.Discard(consumed)

	e.rateOut = e.rate.process(e.tempoOut, e.rateOut[:0])
	e.out = e.volume.apply(e.rateOut, e.params.Volume, e.out[:0])
	return e.out
}

// Holding reports whether samples are held in input or in the engine.
func (e *Engine) Holding(input *pipeline.Buffer[int16]) bool {
	return input.Len() > 0 || e.rate.held() > 0
}

// Flush forces out everything held in input and in the engine. It pads with
// silence to push the held samples through, then trims the output to the
// length the held samples would have produced. Input is left empty and the
// engine is ready for more data.
func (e *Engine) Flush(input *pipeline.Buffer[int16]) []int16 {
	if !e.Holding(input) {
		return e.out[:0]
	}

	expected := e.expectedFlushLength(input.Len())

	input.Pad(2 * e.tempo.maxRequired)
	e.tempoOut = e.tempoOut[:0]
	_, e.tempoOut = e.tempo.process(input.Samples(), e.tempoSpeed(), e.params.Quality, e.tempoOut)

	e.rateOut = e.rate.process(e.tempoOut, e.rateOut[:0])
	e.rateOut = e.rate.drain(e.rateOut)

	if len(e.rateOut) > expected {
		e.rateOut = e.rateOut[:expected]
	}
	e.out = e.volume.apply(e.rateOut, e.params.Volume, e.out[:0])

	input.Clear()
	e.tempo.clearRemaining()
	e.rate.clear()
	return e.out
}

// expectedFlushLength estimates how many output samples the pending input
// and the rate history correspond to at the current parameters.
func (e *Engine) expectedFlushLength(pending int) int {
	held := float64(pending)/e.tempoSpeed() + float64(e.rate.held())
	return int(math.Floor(held/e.params.Pitch + 0.5))
}

// Reset drops all engine state but keeps the parameters.
func (e *Engine) Reset() {
	e.tempo.reset()
	e.rate.clear()
}

// MinPeriod returns the shortest pitch period searched, in samples.
func (e *Engine) MinPeriod() int {
	return e.tempo.minPeriod
}

// MaxPeriod returns the longest pitch period searched, in samples.
func (e *Engine) MaxPeriod() int {
	return e.tempo.maxPeriod
}

// MaxRequired returns the look-ahead the tempo stage needs per step.
func (e *Engine) MaxRequired() int {
	return e.tempo.maxRequired
}

// GetLatency returns the worst-case number of input samples held back
// before they affect output.
func (e *Engine) GetLatency() int {
	return e.tempo.maxRequired + e.rate.halfTaps
}

// GetMemoryUsage returns approximate memory usage in bytes.
func (e *Engine) GetMemoryUsage() int64 {
	usage := e.rate.memoryUsage()
	usage += int64(cap(e.tempo.down)) * bytesPerInt
	usage += int64(cap(e.tempoOut)+cap(e.out)) * bytesPerInt16
	usage += int64(cap(e.rateOut)) * bytesPerFloat64
	return usage
}
