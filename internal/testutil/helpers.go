// Package testutil provides reusable test helpers for the sample stream tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// Common test signal parameters.
const (
	SampleRate8k  = 8000
	SampleRate16k = 16000
	SampleRate44k = 44100

	DefaultAmplitude = 10000
)

// Sine returns n samples of a sine wave at freq Hz.
func Sine(n int, freq float64, sampleRate int, amplitude float64) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = int16(math.Round(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))))
	}
	return s
}

// Constant returns n copies of v.
func Constant(n int, v int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// Ramp returns the sequence start, start+1, ... of length n, wrapping at
// the int16 limits.
func Ramp(n int, start int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = start + int16(i)
	}
	return s
}

// ToFloat64 widens samples to float64.
func ToFloat64(s []int16) []float64 {
	f := make([]float64, len(s))
	for i, v := range s {
		f[i] = float64(v)
	}
	return f
}

// RMS returns the root mean square of s.
func RMS(s []int16) float64 {
	if len(s) == 0 {
		return 0
	}
	f := ToFloat64(s)
	return math.Sqrt(floats.Dot(f, f) / float64(len(f)))
}

// Peak returns the largest absolute sample value.
func Peak(s []int16) float64 {
	if len(s) == 0 {
		return 0
	}
	f := ToFloat64(s)
	return math.Max(math.Abs(floats.Max(f)), math.Abs(floats.Min(f)))
}

// ZeroCrossings counts sign changes in s, a cheap pitch proxy.
func ZeroCrossings(s []int16) int {
	n := 0
	for i := 1; i < len(s); i++ {
		if (s[i-1] < 0) != (s[i] < 0) {
			n++
		}
	}
	return n
}

// AssertLengthNear verifies that got is within tolerance samples of want.
func AssertLengthNear(t *testing.T, want, got, tolerance int, msgAndArgs ...any) bool {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return assert.Fail(t, "length out of tolerance",
			"got %d samples, want %d ± %d", got, want, tolerance)
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
