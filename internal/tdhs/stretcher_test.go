package tdhs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-stretch/internal/testutil"
)

const (
	testRate     = 44100
	testShortest = 44  // 1000 Hz
	testLongest  = 441 // 100 Hz
)

// runSession feeds samples through s in windows of the given size at ratio
// and returns all output plus the largest single-call frame count.
func runSession(t *testing.T, s *Stretcher, samples []int16, channels, window int, maxRatio float64, ratio func(int) float64) ([]int16, int) {
	t.Helper()

	capacity := s.OutputCapacity(window, maxRatio)
	out := make([]int16, capacity*channels)

	var result []int16
	var peak int
	frames := len(samples) / channels
	for pos, call := 0, 0; pos < frames; call++ {
		n := min(window, frames-pos)
		got := s.Samples(samples[pos*channels:], n, out, ratio(call))
		require.LessOrEqual(t, got, capacity, "call %d exceeded capacity", call)
		peak = max(peak, got)
		result = append(result, out[:got*channels]...)
		pos += n
	}

	for i := 0; ; i++ {
		got := s.Flush(out)
		require.LessOrEqual(t, got, capacity, "flush %d exceeded capacity", i)
		if got == 0 {
			break
		}
		result = append(result, out[:got*channels]...)
		require.Less(t, i, 10000, "flush never drained")
	}
	return result, peak
}

func constRatio(r float64) func(int) float64 {
	return func(int) float64 { return r }
}

func TestNew_InvalidParams(t *testing.T) {
	tests := []struct {
		name             string
		lo, hi, channels int
	}{
		{"zero channels", 40, 400, 0},
		{"three channels", 40, 400, 3},
		{"inverted range", 400, 40, 1},
		{"equal bounds", 100, 100, 1},
		{"period too short", 1, 400, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.lo, tt.hi, tt.channels, 0)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestStretcher_UnityRatioIsIdentity(t *testing.T) {
	for _, flags := range []Flags{0, FlagFast, FlagDual, FlagDual | FlagFast} {
		s, err := New(testShortest, testLongest, 2, flags)
		require.NoError(t, err)

		in := testutil.Sine(20000, 2, testRate, 330, 12000)
		out, _ := runSession(t, s, in, 2, 1103, 1.0, constRatio(1.0))
		testutil.AssertFramesEqual(t, in, out, 2)
		s.Close()
	}
}

func TestStretcher_OutputLengthTracksRatio(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		ratio float64
		slack float64 // in longest periods
	}{
		{"slow down", 0, 1.5, 3},
		{"speed up", 0, 0.75, 3},
		{"double", 0, 2.0, 3},
		{"half", 0, 0.5, 3},
		{"fast search", FlagFast, 1.25, 3},
		{"dual triple", FlagDual, 3.0, 10},
		{"dual third", FlagDual, 0.3, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(testShortest, testLongest, 1, tt.flags)
			require.NoError(t, err)
			defer s.Close()

			const frames = 2 * testRate
			in := testutil.Sine(frames, 1, testRate, 220, 10000)
			out, _ := runSession(t, s, in, 1, 4410, math.Max(tt.ratio, 1), constRatio(tt.ratio))

			want := tt.ratio * frames
			assert.InDelta(t, want, float64(len(out)), tt.slack*testLongest)
		})
	}
}

func TestStretcher_CapacityHoldsUnderVaryingRatio(t *testing.T) {
	for _, flags := range []Flags{0, FlagDual} {
		s, err := New(testShortest, testLongest, 2, flags)
		require.NoError(t, err)

		hi := 2.0
		if flags&FlagDual != 0 {
			hi = 4.0
		}
		in := testutil.Sine(3*testRate, 2, testRate, 150, 16000)
		sweep := func(call int) float64 {
			// Swing between the extremes on alternate windows.
			if call%2 == 0 {
				return hi
			}
			return 1 / hi
		}
		// Small windows stress the carried backlog.
		_, peak := runSession(t, s, in, 2, 64, hi, sweep)
		assert.Positive(t, peak)
		s.Close()
	}
}

func TestStretcher_UndersizedBufferIsReported(t *testing.T) {
	s, err := New(testShortest, testLongest, 1, 0)
	require.NoError(t, err)
	defer s.Close()

	in := testutil.Sine(10*testLongest, 1, testRate, 200, 8000)
	out := make([]int16, 10)

	n := s.Samples(in, len(in), out, 2.0)
	assert.Greater(t, n, len(out), "generated count must expose the overflow")
}

func TestStretcher_FlushDrainsThenStaysEmpty(t *testing.T) {
	s, err := New(testShortest, testLongest, 1, FlagDual)
	require.NoError(t, err)
	defer s.Close()

	in := testutil.Sine(3*testLongest, 1, testRate, 200, 8000)
	capacity := s.OutputCapacity(len(in), 4.0)
	out := make([]int16, capacity)

	s.Samples(in, len(in), out, 1.7)
	total := 0
	for n := s.Flush(out); n > 0; n = s.Flush(out) {
		total += n
	}
	assert.Positive(t, total)
	assert.Zero(t, s.Flush(out))
	assert.Zero(t, s.Flush(out))
}

func TestStretcher_ClosedReturnsZero(t *testing.T) {
	s, err := New(testShortest, testLongest, 1, 0)
	require.NoError(t, err)
	s.Close()
	s.Close()

	out := make([]int16, 1000)
	assert.Zero(t, s.Samples(make([]int16, 100), 100, out, 1.5))
	assert.Zero(t, s.Flush(out))
}

func TestStretcher_OutputCapacityGrowsWithRatio(t *testing.T) {
	s, err := New(testShortest, testLongest, 1, 0)
	require.NoError(t, err)
	d, err := New(testShortest, testLongest, 1, FlagDual)
	require.NoError(t, err)

	assert.Less(t, s.OutputCapacity(1000, 1.0), s.OutputCapacity(1000, 2.0))
	assert.Less(t, s.OutputCapacity(1000, 2.0), d.OutputCapacity(1000, 4.0))
	assert.True(t, d.Dual())
	assert.False(t, s.Dual())
}

func TestFindPeriod(t *testing.T) {
	// 441 Hz at 44.1 kHz repeats every 100 frames.
	for _, fast := range []bool{false, true} {
		in := newInstance(40, 400, 2, fast)
		sig := testutil.Sine(2*400, 2, testRate, 441, 12000)
		in.push(sig)

		assert.InDelta(t, 100, in.findPeriod(), 1, "fast=%v", fast)
	}
}

func TestStep_PreservesWaveformContinuity(t *testing.T) {
	// Expanding a pure tone by whole periods keeps it a pure tone.
	s, err := New(40, 400, 1, 0)
	require.NoError(t, err)
	defer s.Close()

	in := testutil.Sine(testRate, 1, testRate, 441, 12000)
	out, _ := runSession(t, s, in, 1, 2048, 1.5, constRatio(1.5))

	var maxJump float64
	for i := 1; i < len(out); i++ {
		maxJump = math.Max(maxJump, math.Abs(float64(out[i])-float64(out[i-1])))
	}
	// Largest sample-to-sample step of the source tone is about 12000*2*pi/100.
	assert.Less(t, maxJump, 1000.0)
}
