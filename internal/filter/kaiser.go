// Package filter designs the interpolation kernels used by the rate stage.
package filter

import (
	"math"

	"github.com/tphakala/go-audio-sonic/internal/mathutil"
)

const (
	// windowNormalizationFactor maps a window length onto [-1, 1].
	windowNormalizationFactor = 2.0

	// sincZeroThreshold guards divisions by a vanishing DC sum.
	sincZeroThreshold = 1e-10
)

// KaiserWindow generates a symmetric Kaiser window of the given length and β.
//
//	w[n] = I₀(β √(1 - ((n - α)/α)²)) / I₀(β),  α = (N-1)/2
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1.0
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	for n := range length {
		window[n] = KaiserValue((float64(n)-alpha)/alpha, beta)
	}

	return window
}

// KaiserValue evaluates the continuous Kaiser window at x ∈ [-1, 1].
// Outside that interval the window is zero.
func KaiserValue(x, beta float64) float64 {
	if x < -1 || x > 1 {
		return 0
	}
	return mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / mathutil.BesselI0(beta)
}
