// Package simdops exposes the vector kernels used by the transform engine.
//
// Operations are held as function pointers so the engine can be driven by
// either the SIMD implementations from github.com/tphakala/simd or a pure Go
// fallback in tests. With Profile-Guided Optimization the indirect calls in
// hot paths can be devirtualized.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f64"
)

// Ops provides float64 vector operations.
type Ops struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

var (
	simdOps = Ops{
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
	genericOps = Ops{
		DotProductUnsafe: dotGeneric,
		Sum:              sumGeneric,
		Scale:            scaleGeneric,
	}
)

// Default returns the SIMD-accelerated operations.
func Default() *Ops {
	return &simdOps
}

// Generic returns pure Go operations with identical semantics.
func Generic() *Ops {
	return &genericOps
}

// Info returns a description of the detected SIMD instruction set.
func Info() string {
	return cpu.Info()
}

func dotGeneric(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sumGeneric(a []float64) float64 {
	var sum float64
	for _, v := range a {
		sum += v
	}
	return sum
}

func scaleGeneric(dst, a []float64, s float64) {
	for i := range a {
		dst[i] = a[i] * s
	}
}
