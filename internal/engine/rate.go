package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-sonic/internal/filter"
	"github.com/tphakala/go-audio-sonic/internal/pipeline"
	"github.com/tphakala/go-audio-sonic/internal/simdops"
)

// rateStage resamples by 1/rate to shift pitch.
//
// The buffer always starts with halfTaps-1 samples of history that have
// already been stepped past. Output sample newPos falls between input
// samples oldPos and oldPos+1 at fraction
// (newPos*oldRate - oldPos*newRate) / newRate.
type rateStage struct {
	sampleRate int
	rate       float64
	quality    Quality
	halfTaps   int

	buf *pipeline.Buffer[float64]

	oldRate int
	newRate int
	oldPos  int
	newPos  int

	kernel  *filter.PolyphaseKernel
	weights []float64
	conv    []float64
	ops     *simdops.Ops
}

func newRateStage(sampleRate int, rate float64, quality Quality, ops *simdops.Ops) (*rateStage, error) {
	r := &rateStage{
		sampleRate: sampleRate,
		halfTaps:   linearHalfTaps,
		buf:        pipeline.NewBuffer[float64](0, 0),
		ops:        ops,
	}
	if err := r.configure(rate, quality); err != nil {
		return nil, err
	}
	return r, nil
}

// configure applies a new rate and quality. Held samples are kept; the
// fractional position restarts when the rate changes.
func (r *rateStage) configure(rate float64, quality Quality) error {
	if rate == r.rate && quality == r.quality && (r.kernel != nil || quality == QualityFast) {
		return nil
	}

	halfTaps := linearHalfTaps
	var kernel *filter.PolyphaseKernel
	if quality == QualityHigh {
		halfTaps = sincHalfTaps
		var err error
		kernel, err = filter.DesignPolyphaseKernel(filter.KernelParams{
			HalfTaps:    sincHalfTaps,
			NumPhases:   sincNumPhases,
			Cutoff:      sincCutoff * math.Min(1, 1/rate),
			Attenuation: sincAttenuation,
			Ops:         r.ops,
		})
		if err != nil {
			return fmt.Errorf("failed to design rate kernel: %w", err)
		}
	}

	r.reshapeHistory(halfTaps)
	r.halfTaps = halfTaps
	r.kernel = kernel
	r.weights = make([]float64, 2*halfTaps)

	if rate != r.rate {
		r.rate = rate
		r.setRates()
	}
	r.quality = quality
	return nil
}

// setRates derives the integer rate pair and restarts the position.
func (r *rateStage) setRates() {
	oldRate := r.sampleRate
	newRate := max(int(float64(r.sampleRate)/r.rate), 1)
	for oldRate > maxRateUnits || newRate > maxRateUnits {
		oldRate >>= 1
		newRate >>= 1
	}

	r.oldRate = max(oldRate, 1)
	r.newRate = max(newRate, 1)
	r.oldPos = 0
	r.newPos = 0
}

// reshapeHistory resizes the history prefix for a new kernel width while
// keeping every held sample.
func (r *rateStage) reshapeHistory(halfTaps int) {
	held := r.buf.Samples()
	if len(held) >= r.halfTaps-1 {
		held = held[r.halfTaps-1:]
	}
	kept := append([]float64(nil), held...)

	r.buf.Clear()
	r.buf.Pad(halfTaps - 1)
	_ = r.buf.Write(kept)
}

func (r *rateStage) isUnity() bool {
	return math.Abs(r.rate-1) < unitySpeedTolerance
}

// held returns the number of input samples not yet stepped past.
func (r *rateStage) held() int {
	return max(r.buf.Len()-(r.halfTaps-1), 0)
}

// process appends in to the held samples and appends every output sample
// they allow to out.
func (r *rateStage) process(in []int16, out []float64) []float64 {
	r.conv = r.conv[:0]
	for _, v := range in {
		r.conv = append(r.conv, float64(v))
	}
	_ = r.buf.Write(r.conv)

	s := r.buf.Samples()
	history := r.halfTaps - 1

	if r.isUnity() {
		// Pass held samples through and keep the tail as history for a
		// later rate change.
		out = append(out, s[history:]...)
		r.buf.Discard(len(s) - history)
		r.oldPos = 0
		r.newPos = 0
		return out
	}

	p := history
	for ; p+r.halfTaps < len(s); p++ {
		for (r.oldPos+1)*r.newRate > r.newPos*r.oldRate {
			out = append(out, r.interpolate(s, p))
			r.newPos++
		}

		r.oldPos++
		if r.oldPos == r.oldRate {
			r.oldPos = 0
			r.newPos = 0
		}
	}

	r.buf.Discard(p - history)
	return out
}

// drain pushes the held samples out with trailing silence.
func (r *rateStage) drain(out []float64) []float64 {
	if r.held() == 0 {
		return out
	}
	r.buf.Pad(2 * r.halfTaps)
	return r.process(nil, out)
}

// clear drops held samples and restores the zero history.
func (r *rateStage) clear() {
	r.buf.Clear()
	r.buf.Pad(r.halfTaps - 1)
	r.oldPos = 0
	r.newPos = 0
}

func (r *rateStage) interpolate(s []float64, p int) float64 {
	d := r.newPos*r.oldRate - r.oldPos*r.newRate

	if r.kernel == nil {
		width := float64(r.newRate)
		return ((width-float64(d))*s[p] + float64(d)*s[p+1]) / width
	}

	frac := float64(d) / float64(r.newRate)
	w := r.kernel.Weights(frac, r.weights)
	start := p - (r.halfTaps - 1)
	return r.ops.DotProductUnsafe(w, s[start:start+len(w)])
}

func (r *rateStage) memoryUsage() int64 {
	usage := int64(r.buf.Capacity()+len(r.weights)+cap(r.conv)) * bytesPerFloat64
	if r.kernel != nil {
		usage += r.kernel.GetMemoryUsage()
	}
	return usage
}
