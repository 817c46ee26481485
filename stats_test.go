package stretch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Ratio(t *testing.T) {
	assert.Zero(t, (&Stats{}).Ratio())
	assert.InDelta(t, 1.5, (&Stats{InputFrames: 200, OutputFrames: 300}).Ratio(), 1e-12)
}

func TestStats_ReportSetupOnly(t *testing.T) {
	s := &Stats{InputRate: 44100, Channels: 2, WindowFrames: 1102, MinPeriod: 132, MaxPeriod: 801, Fast: true, Dual: true}

	var buf bytes.Buffer
	require.NoError(t, s.Report(&buf))

	assert.Equal(t, "file sample rate is 44100 Hz (stereo), buffer size is 1102 samples\n"+
		"stretch period range = 132 to 801, 2 channels, fast mode, dual instance\n", buf.String())
}

func TestStats_ReportSubFormat(t *testing.T) {
	s := &Stats{
		InputRate: 48000, Channels: 1, WindowFrames: 1200, MinPeriod: 144, MaxPeriod: 872,
		SubFormat: uuid.MustParse("00000001-0000-0010-8000-00aa00389b71"),
	}

	var buf bytes.Buffer
	require.NoError(t, s.Report(&buf))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "extensible format, sub-format 00000001-0000-0010-8000-00aa00389b71", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "stretch period range"))
}

func TestStats_ReportFinished(t *testing.T) {
	s := &Stats{
		InputRate: 8000, OutputRate: 16000, Channels: 1, WindowFrames: 200,
		MinPeriod: 24, MaxPeriod: 400, ScaledRate: true,
		InputFrames: 1000, OutputFrames: 2000,
		SilenceFrames: 3, NonSilenceFrames: 1, GapFramesUsed: 2,
		Capacity: 1400, MaxStretchFrames: 420, MaxFlushFrames: 380,
	}

	var buf bytes.Buffer
	require.NoError(t, s.Report(&buf))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	require.Len(t, lines, 6)
	assert.Equal(t, "file sample rate is 8000 Hz (mono), buffer size is 200 samples", lines[0])
	assert.Equal(t, "stretch period range = 24 to 400, 1 channels, normal mode, single instance", lines[1])
	assert.Equal(t, "done, 1000 samples --> 2000 samples (ratio = 2.000)", lines[2])
	assert.Equal(t, "sample rate changed from 8000 Hz to 16000 Hz", lines[3])
	assert.Equal(t, "max expected samples = 1400, actually seen = 420 stretch, 380 flush", lines[4])
	assert.Equal(t, "3 silence frames detected (75.00%), 2 actually used (50.00%)", lines[5])
}

func TestStats_ReportWithoutGapOrScaling(t *testing.T) {
	s := &Stats{InputRate: 8000, Channels: 1, InputFrames: 10, OutputFrames: 10}

	var buf bytes.Buffer
	require.NoError(t, s.Report(&buf))

	assert.NotContains(t, buf.String(), "sample rate changed")
	assert.NotContains(t, buf.String(), "silence frames")
	assert.Contains(t, buf.String(), "(ratio = 1.000)")
}

func TestStats_ReportWriteError(t *testing.T) {
	require.Error(t, (&Stats{}).Report(failingWriter{}))
}
