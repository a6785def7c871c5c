package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	windowTolerance = 1e-10

	testWindowLength11 = 11
	testWindowLength51 = 51
	testBeta5          = 5.0
	testBeta10         = 10.0
)

// TestKaiserWindow_Symmetry verifies that Kaiser window is symmetric.
func TestKaiserWindow_Symmetry(t *testing.T) {
	tests := []struct {
		name   string
		length int
		beta   float64
	}{
		{"length_11_beta_5", testWindowLength11, testBeta5},
		{"length_51_beta_10", testWindowLength51, testBeta10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := KaiserWindow(tt.length, tt.beta)
			require.Len(t, w, tt.length)
			for i := 0; i < tt.length/2; i++ {
				assert.InDelta(t, w[i], w[tt.length-1-i], windowTolerance, "asymmetric at %d", i)
			}
		})
	}
}

// TestKaiserWindow_PeakAtCenter verifies the window peaks at 1.0 in the middle.
func TestKaiserWindow_PeakAtCenter(t *testing.T) {
	w := KaiserWindow(testWindowLength11, testBeta5)
	center := w[testWindowLength11/2]
	assert.InDelta(t, 1.0, center, windowTolerance)
	for i, v := range w {
		assert.LessOrEqual(t, v, center+windowTolerance, "w[%d] exceeds center", i)
	}
}

func TestKaiserWindow_EdgeCases(t *testing.T) {
	assert.Empty(t, KaiserWindow(0, testBeta5))
	assert.Equal(t, []float64{1.0}, KaiserWindow(1, testBeta5))
}

func TestKaiserValue_OutsideSupport(t *testing.T) {
	assert.Zero(t, KaiserValue(-1.01, testBeta5))
	assert.Zero(t, KaiserValue(1.01, testBeta5))
	assert.InDelta(t, 1.0, KaiserValue(0, testBeta5), windowTolerance)
}

func TestKaiserValue_RectangularForZeroBeta(t *testing.T) {
	for _, x := range []float64{-1, -0.5, 0, 0.5, 1} {
		assert.InDelta(t, 1.0, KaiserValue(x, 0), windowTolerance)
	}
}
