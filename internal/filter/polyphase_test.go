package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-sonic/internal/simdops"
)

const (
	kernelTolerance = 1e-9

	testHalfTaps    = 8
	testNumPhases   = 256
	testAttenuation = 80.0
)

func newTestKernel(t *testing.T, cutoff float64) *PolyphaseKernel {
	t.Helper()
	k, err := DesignPolyphaseKernel(KernelParams{
		HalfTaps:    testHalfTaps,
		NumPhases:   testNumPhases,
		Cutoff:      cutoff,
		Attenuation: testAttenuation,
	})
	require.NoError(t, err)
	return k
}

func TestKernelParams_Validate(t *testing.T) {
	valid := KernelParams{HalfTaps: 8, NumPhases: 64, Cutoff: 0.5, Attenuation: 80}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *KernelParams)
	}{
		{"zero half taps", func(p *KernelParams) { p.HalfTaps = 0 }},
		{"too many half taps", func(p *KernelParams) { p.HalfTaps = 65 }},
		{"one phase", func(p *KernelParams) { p.NumPhases = 1 }},
		{"zero cutoff", func(p *KernelParams) { p.Cutoff = 0 }},
		{"cutoff above nyquist", func(p *KernelParams) { p.Cutoff = 0.6 }},
		{"negative attenuation", func(p *KernelParams) { p.Attenuation = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate())
			_, err := DesignPolyphaseKernel(p)
			assert.Error(t, err)
		})
	}
}

// TestPolyphaseKernel_UnityDCGain verifies every row sums to one.
func TestPolyphaseKernel_UnityDCGain(t *testing.T) {
	for _, cutoff := range []float64{0.5, 0.25, 0.1} {
		k := newTestKernel(t, cutoff)
		for p := 0; p <= k.NumPhases; p++ {
			sum := 0.0
			for _, c := range k.Coeffs[p*k.Taps : (p+1)*k.Taps] {
				sum += c
			}
			assert.InDelta(t, 1.0, sum, kernelTolerance, "cutoff %v row %d", cutoff, p)
		}
	}
}

// TestPolyphaseKernel_IntegerOffsetIsIdentity verifies that at full bandwidth
// a zero fractional offset selects the current sample unchanged.
func TestPolyphaseKernel_IntegerOffsetIsIdentity(t *testing.T) {
	k := newTestKernel(t, 0.5)
	w := k.Weights(0, make([]float64, k.Taps))

	for j, v := range w {
		if j == k.HalfTaps-1 {
			assert.InDelta(t, 1.0, v, kernelTolerance)
		} else {
			assert.InDelta(t, 0.0, v, kernelTolerance, "tap %d", j)
		}
	}
}

// TestPolyphaseKernel_HalfOffsetIsSymmetric verifies the mid-point row is
// mirror symmetric around the interpolation point.
func TestPolyphaseKernel_HalfOffsetIsSymmetric(t *testing.T) {
	k := newTestKernel(t, 0.45)
	w := k.Weights(0.5, make([]float64, k.Taps))
	for j := 0; j < k.HalfTaps; j++ {
		assert.InDelta(t, w[j], w[k.Taps-1-j], kernelTolerance, "tap %d", j)
	}
}

func TestPolyphaseKernel_WeightsClampFraction(t *testing.T) {
	k := newTestKernel(t, 0.5)
	dst := make([]float64, k.Taps)

	assert.NotPanics(t, func() { k.Weights(0.999999, dst) })
	assert.NotPanics(t, func() { k.Weights(-0.0001, dst) })
	assert.Positive(t, k.GetMemoryUsage())
}

// TestDesignPolyphaseKernel_GenericOps verifies the pure Go operations
// normalize the table the same way as the SIMD ones.
func TestDesignPolyphaseKernel_GenericOps(t *testing.T) {
	params := KernelParams{HalfTaps: testHalfTaps, NumPhases: testNumPhases, Cutoff: 0.3, Attenuation: testAttenuation}
	simd, err := DesignPolyphaseKernel(params)
	require.NoError(t, err)

	params.Ops = simdops.Generic()
	generic, err := DesignPolyphaseKernel(params)
	require.NoError(t, err)

	require.Len(t, generic.Coeffs, len(simd.Coeffs))
	assert.InDeltaSlice(t, simd.Coeffs, generic.Coeffs, 1e-12)
}
