package engine

import (
	"math"

	"github.com/tphakala/go-audio-sonic/internal/simdops"
)

// volumeStage scales the final output and converts it to int16.
type volumeStage struct {
	ops     *simdops.Ops
	scratch []float64
}

func newVolumeStage(ops *simdops.Ops) *volumeStage {
	return &volumeStage{ops: ops}
}

// apply appends in scaled by volume to out, rounding to the nearest integer
// and saturating at the int16 limits.
func (v *volumeStage) apply(in []float64, volume float64, out []int16) []int16 {
	if len(in) == 0 {
		return out
	}

	samples := in
	if volume != 1 {
		if cap(v.scratch) < len(in) {
			v.scratch = make([]float64, len(in))
		}
		samples = v.scratch[:len(in)]
		v.ops.Scale(samples, in, volume)
	}

	for _, s := range samples {
		out = append(out, clampSample(s))
	}
	return out
}

// clampSample rounds s and saturates it to the int16 range.
func clampSample(s float64) int16 {
	r := math.Round(s)
	switch {
	case r > maxSample:
		return maxSample
	case r < minSample:
		return minSample
	default:
		return int16(r)
	}
}
