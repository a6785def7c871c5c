package pcm

import (
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	samples, err := Decode([]byte{0x10, 0x27, 0xf0, 0xd8, 0xff, 0x7f, 0x00, 0x80})
	require.NoError(t, err)
	assert.Equal(t, []int16{10000, -10000, 32767, -32768}, samples)

	empty, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecode_OddLength(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrOddLength)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, []byte{0x10, 0x27, 0xf0, 0xd8}, Encode([]int16{10000, -10000}))
	assert.Empty(t, Encode(nil))

	dst := AppendEncode([]byte{0xaa}, []int16{1})
	assert.Equal(t, []byte{0xaa, 0x01, 0x00}, dst)
}

func TestFromInts_Saturates(t *testing.T) {
	assert.Equal(t, []int16{32767, -32768, 5, -5}, FromInts([]int{40000, -40000, 5, -5}))
}

func TestIntBuffer(t *testing.T) {
	buf := NewIntBuffer([]int16{1, -2, 3}, 16000)
	assert.Equal(t, []int{1, -2, 3}, buf.Data)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Equal(t, 16000, buf.Format.SampleRate)
	assert.Equal(t, BitDepth, buf.SourceBitDepth)
	require.NoError(t, CheckIntBuffer(buf, 16000))

	tests := []struct {
		name string
		buf  *audio.IntBuffer
	}{
		{"nil", nil},
		{"no format", &audio.IntBuffer{}},
		{"stereo", &audio.IntBuffer{Format: &audio.Format{NumChannels: 2, SampleRate: 16000}}},
		{"rate mismatch", &audio.IntBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: 8000}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, CheckIntBuffer(tt.buf, 16000))
		})
	}
}
