package rescale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-stretch/internal/testutil"
)

func convertAll(c *Converter, in []int16, chunk int) []int16 {
	var out []int16
	for len(in) > 0 {
		n := min(chunk, len(in))
		out = append(out, c.Process(in[:n])...)
		in = in[n:]
	}
	return append(out, c.Flush()...)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(0, 44100, 1)
	require.ErrorIs(t, err, ErrInvalidRates)
	_, err = New(44100, -1, 1)
	require.ErrorIs(t, err, ErrInvalidRates)
	_, err = New(44100, 48000, 3)
	require.ErrorIs(t, err, ErrInvalidRates)

	c, err := New(88200, 44100, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.Ratio(), 1e-12)
}

func TestConverter_OutputLength(t *testing.T) {
	tests := []struct {
		name          string
		inRate, out   int
		frames        int
		expectedCount int
	}{
		{"halve", 88200, 44100, 44100, 22050},
		{"double", 22050, 44100, 1000, 2000},
		{"identity", 44100, 44100, 777, 777},
		{"non integer", 66150, 44100, 3000, 2000},
		{"single frame", 48000, 44100, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.inRate, tt.out, 1)
			require.NoError(t, err)

			out := convertAll(c, testutil.Sine(tt.frames, 1, tt.inRate, 300, 5000), 512)
			assert.Len(t, out, tt.expectedCount)

			in, emitted := c.Frames()
			assert.Equal(t, uint64(tt.frames+tailFrames), in)
			assert.Equal(t, uint64(tt.expectedCount), emitted)
		})
	}
}

func TestConverter_IdentityIsExact(t *testing.T) {
	c, err := New(44100, 44100, 2)
	require.NoError(t, err)

	in := testutil.Sine(2000, 2, 44100, 1000, 20000)
	out := convertAll(c, in, 300)
	testutil.AssertFramesEqual(t, in, out, 2)
}

func TestConverter_ConstantStaysConstant(t *testing.T) {
	c, err := New(70000, 44100, 2)
	require.NoError(t, err)

	out := convertAll(c, testutil.Constant(5000, 2, -1234), 1000)
	require.NotEmpty(t, out)
	for i, v := range out {
		require.Equal(t, int16(-1234), v, "sample %d", i)
	}
}

func TestConverter_ChunkingDoesNotMatter(t *testing.T) {
	in := testutil.Sine(10000, 2, 48000, 440, 15000)

	whole, err := New(48000, 44100, 2)
	require.NoError(t, err)
	pieces, err := New(48000, 44100, 2)
	require.NoError(t, err)

	assert.Equal(t, convertAll(whole, in, len(in)), convertAll(pieces, in, 7*2))
}

func TestConverter_PreservesTone(t *testing.T) {
	// 441 Hz at 88.2 kHz becomes 441 Hz at 44.1 kHz: 100 frames per cycle.
	c, err := New(88200, 44100, 1)
	require.NoError(t, err)

	out := convertAll(c, testutil.Sine(88200, 1, 88200, 441, 10000), 4096)
	want := testutil.Sine(len(out), 1, 44100, 441, 10000)

	var worst float64
	for i := 10; i < len(out)-10; i++ {
		worst = math.Max(worst, math.Abs(float64(out[i])-float64(want[i])))
	}
	assert.Less(t, worst, 20.0)
}

func TestConverter_ClipsOvershoot(t *testing.T) {
	c, err := New(44100, 96000, 1)
	require.NoError(t, err)

	// A full-scale square wave overshoots under cubic interpolation.
	in := make([]int16, 400)
	for i := range in {
		if (i/4)%2 == 0 {
			in[i] = math.MaxInt16
		} else {
			in[i] = math.MinInt16
		}
	}
	out := convertAll(c, in, len(in))
	require.NotEmpty(t, out)
	assert.Contains(t, out, int16(math.MaxInt16))
}

func TestConverter_AfterFlushIsInert(t *testing.T) {
	c, err := New(44100, 22050, 1)
	require.NoError(t, err)
	c.Process(testutil.Constant(100, 1, 5))
	c.Flush()

	assert.Empty(t, c.Process(testutil.Constant(100, 1, 5)))
	assert.Empty(t, c.Flush())
}
