package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_WriteRead(t *testing.T) {
	b := NewBuffer[int16](4, 0)

	require.NoError(t, b.Write([]int16{1, 2, 3}))
	require.NoError(t, b.Write([]int16{4, 5, 6, 7}))
	assert.Equal(t, 7, b.Len())

	assert.Equal(t, []int16{1, 2}, b.Read(2))
	assert.Equal(t, []int16{3, 4, 5, 6, 7}, b.Samples())
	assert.Equal(t, []int16{3, 4, 5, 6, 7}, b.Read(100))
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Read(1))
}

func TestBuffer_LimitRejectsWithoutMutation(t *testing.T) {
	b := NewBuffer[int16](0, 5)

	require.NoError(t, b.Write([]int16{1, 2, 3}))
	err := b.Write([]int16{4, 5, 6})
	require.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, []int16{1, 2, 3}, b.Samples())

	assert.True(t, b.Fits(2))
	assert.False(t, b.Fits(3))
	require.NoError(t, b.Write([]int16{4, 5}))
	assert.Equal(t, 5, b.Limit())
}

func TestBuffer_PadIgnoresLimit(t *testing.T) {
	b := NewBuffer[float64](0, 2)
	require.NoError(t, b.Write([]float64{1, 2}))

	b.Pad(3)
	assert.Equal(t, []float64{1, 2, 0, 0, 0}, b.Samples())
}

func TestBuffer_ReadInto(t *testing.T) {
	b := NewBuffer[int16](0, 0)
	require.NoError(t, b.Write([]int16{9, 8, 7}))

	dst := make([]int16, 2)
	assert.Equal(t, 2, b.ReadInto(dst))
	assert.Equal(t, []int16{9, 8}, dst)
	assert.Equal(t, 1, b.ReadInto(dst))
	assert.Equal(t, int16(7), dst[0])
	assert.Equal(t, 0, b.ReadInto(dst))
}

func TestBuffer_DiscardClear(t *testing.T) {
	b := NewBuffer[int16](0, 0)
	require.NoError(t, b.Write([]int16{1, 2, 3, 4, 5}))

	b.Discard(2)
	assert.Equal(t, []int16{3, 4, 5}, b.Samples())

	b.Discard(10)
	assert.Equal(t, 0, b.Len())

	require.NoError(t, b.Write([]int16{6}))
	b.Clear()
	assert.Equal(t, 0, b.Len())

	b.Release()
	require.NoError(t, b.Write([]int16{7}))
	assert.Equal(t, []int16{7}, b.Samples())
}

// TestBuffer_OrderAcrossGrowthAndCompaction streams far more samples than
// the initial capacity through the buffer and checks ordering is kept.
func TestBuffer_OrderAcrossGrowthAndCompaction(t *testing.T) {
	b := NewBuffer[int16](16, 0)

	var next, expect int16
	for range 2000 {
		chunk := make([]int16, 37)
		for i := range chunk {
			chunk[i] = next
			next++
		}
		require.NoError(t, b.Write(chunk))

		for _, v := range b.Read(31) {
			require.Equal(t, expect, v)
			expect++
		}
	}

	for _, v := range b.Read(b.Len()) {
		require.Equal(t, expect, v)
		expect++
	}
	assert.Equal(t, next, expect)
}

func BenchmarkBuffer_WriteRead(b *testing.B) {
	buf := NewBuffer[int16](0, 0)
	chunk := make([]int16, 512)

	b.ReportAllocs()
	for b.Loop() {
		_ = buf.Write(chunk)
		buf.Discard(512)
	}
}
