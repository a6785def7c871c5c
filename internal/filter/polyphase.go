package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-sonic/internal/mathutil"
	"github.com/tphakala/go-audio-sonic/internal/simdops"
)

const (
	minHalfTaps = 1
	maxHalfTaps = 64

	minNumPhases = 2
	maxNumPhases = 8192
)

// KernelParams describes a windowed-sinc fractional-delay kernel.
type KernelParams struct {
	// HalfTaps is the number of taps on each side of the interpolation
	// point. The kernel spans 2*HalfTaps input samples.
	HalfTaps int

	// NumPhases is the number of tabulated fractional positions in [0, 1).
	NumPhases int

	// Cutoff is the normalized cutoff frequency in (0, 0.5].
	// 0.5 is the input Nyquist frequency.
	Cutoff float64

	// Attenuation is the Kaiser window stopband attenuation in dB.
	Attenuation float64

	// Ops normalizes the rows. Nil selects the SIMD implementation.
	Ops *simdops.Ops
}

// Validate checks if kernel parameters are valid.
func (kp *KernelParams) Validate() error {
	if kp.HalfTaps < minHalfTaps || kp.HalfTaps > maxHalfTaps {
		return fmt.Errorf("half taps %d out of range [%d, %d]", kp.HalfTaps, minHalfTaps, maxHalfTaps)
	}

	if kp.NumPhases < minNumPhases || kp.NumPhases > maxNumPhases {
		return fmt.Errorf("number of phases %d out of range [%d, %d]", kp.NumPhases, minNumPhases, maxNumPhases)
	}

	if kp.Cutoff <= 0 || kp.Cutoff > 0.5 || math.IsNaN(kp.Cutoff) {
		return fmt.Errorf("cutoff frequency %f out of range (0, 0.5]", kp.Cutoff)
	}

	if kp.Attenuation < 0 {
		return fmt.Errorf("attenuation %f dB must be positive", kp.Attenuation)
	}

	return nil
}

// PolyphaseKernel is a windowed-sinc interpolation kernel tabulated at
// NumPhases+1 fractional positions. Row p holds the weights for a fractional
// offset of p/NumPhases; the extra last row (offset 1.0) lets Weights
// interpolate linearly between adjacent rows without wrapping.
//
// Tap j of any row weights the input sample at relative index
// j - (HalfTaps-1), so taps 0..HalfTaps-1 lie at or before the
// interpolation point and the rest after it.
type PolyphaseKernel struct {
	Coeffs    []float64 // (NumPhases+1) * Taps, row-major
	NumPhases int
	Taps      int
	HalfTaps  int
	Cutoff    float64
	Beta      float64
}

// DesignPolyphaseKernel builds a kernel from params. Every row is normalized
// to unity DC gain so a constant input is reproduced exactly.
func DesignPolyphaseKernel(params KernelParams) (*PolyphaseKernel, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kernel parameters: %w", err)
	}

	taps := 2 * params.HalfTaps
	k := &PolyphaseKernel{
		Coeffs:    make([]float64, (params.NumPhases+1)*taps),
		NumPhases: params.NumPhases,
		Taps:      taps,
		HalfTaps:  params.HalfTaps,
		Cutoff:    params.Cutoff,
		Beta:      mathutil.KaiserBeta(params.Attenuation),
	}

	ops := params.Ops
	if ops == nil {
		ops = simdops.Default()
	}

	twoFc := windowNormalizationFactor * params.Cutoff
	half := float64(params.HalfTaps)

	for p := 0; p <= params.NumPhases; p++ {
		frac := float64(p) / float64(params.NumPhases)
		row := k.Coeffs[p*taps : (p+1)*taps]

		for j := range taps {
			d := float64(j-(params.HalfTaps-1)) - frac
			row[j] = twoFc * mathutil.Sinc(twoFc*d) * KaiserValue(d/half, k.Beta)
		}

		sum := ops.Sum(row)
		if math.Abs(sum) > sincZeroThreshold {
			ops.Scale(row, row, 1.0/sum)
		}
	}

	return k, nil
}

// Weights writes the tap weights for the fractional offset frac ∈ [0, 1)
// into dst, which must hold at least Taps values, and returns dst[:Taps].
// Rows are blended linearly between the two nearest tabulated phases.
func (k *PolyphaseKernel) Weights(frac float64, dst []float64) []float64 {
	dst = dst[:k.Taps]

	pos := frac * float64(k.NumPhases)
	phase := int(pos)
	if phase >= k.NumPhases {
		phase = k.NumPhases - 1
	}
	if phase < 0 {
		phase = 0
	}
	x := pos - float64(phase)

	lo := k.Coeffs[phase*k.Taps : (phase+1)*k.Taps]
	hi := k.Coeffs[(phase+1)*k.Taps : (phase+2)*k.Taps]
	for j := range dst {
		dst[j] = lo[j] + (hi[j]-lo[j])*x
	}

	return dst
}

// GetMemoryUsage returns the approximate memory usage in bytes.
func (k *PolyphaseKernel) GetMemoryUsage() int64 {
	const bytesPerFloat64 = 8
	return int64(len(k.Coeffs)) * bytesPerFloat64
}
