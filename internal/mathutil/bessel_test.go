package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBesselI0 tests BesselI0 against known values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		expected  float64
		tolerance float64
	}{
		{"Zero", 0.0, 1.0, 1e-15},
		{"Small positive", 0.5, 1.063483344, 1e-7},
		{"One", 1.0, 1.266065848, 1e-7},
		{"Three", 3.0, 4.880792565, 1e-7},
		{"Boundary 3.75", 3.75, 9.118945994, 1e-7},
		{"Five", 5.0, 27.23987183, 1e-7},
		{"Ten", 10.0, 2815.716628, 1e-6},
		{"Negative one", -1.0, 1.266065848, 1e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BesselI0(tt.x)
			relErr := math.Abs(result-tt.expected) / tt.expected
			assert.LessOrEqual(t, relErr, tt.tolerance,
				"BesselI0(%v) = %v, want %v", tt.x, result, tt.expected)
		})
	}
}

// TestBesselI0_Monotonic tests I₀(x) is monotonically increasing for x > 0.
func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 10.0; x += 0.1 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev, "BesselI0 not increasing at x=%v", x)
		prev = curr
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expected    float64
	}{
		{"rectangular below 21dB", 10, 0},
		{"medium range", 40, 0.5842*math.Pow(19, 0.4) + 0.07886*19},
		{"high range", 80, 0.1102 * (80 - 8.7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, KaiserBeta(tt.attenuation), 1e-12)
		})
	}
}

func TestSinc(t *testing.T) {
	assert.InDelta(t, 1.0, Sinc(0), 1e-15)
	for k := 1; k <= 8; k++ {
		assert.InDelta(t, 0.0, Sinc(float64(k)), 1e-12, "Sinc(%d) should vanish", k)
		assert.InDelta(t, Sinc(float64(k)+0.5), Sinc(-float64(k)-0.5), 1e-15)
	}
	assert.InDelta(t, 2/math.Pi, Sinc(0.5), 1e-12)
}

// BenchmarkBesselI0_Large benchmarks BesselI0 for large values.
func BenchmarkBesselI0_Large(b *testing.B) {
	x := 10.0
	for b.Loop() {
		_ = BesselI0(x)
	}
}
