package sink

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-stretch/internal/testutil"
	"github.com/tphakala/go-audio-stretch/internal/wavfile"
)

func TestResample_RestoresRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restored.wav")
	file, err := CreateFile(path, 2, 44100, false)
	require.NoError(t, err)

	s, err := NewResample(file, 88200)
	require.NoError(t, err)

	const frames = 8820
	raw := wavfile.EncodePCM(nil, testutil.Constant(frames, 2, 4321))

	// Split writes mid-sample and mid-frame.
	for _, cut := range [][2]int{{0, 3}, {3, 1001}, {1001, 1006}, {1006, len(raw)}} {
		n, err := s.Write(raw[cut[0]:cut[1]])
		require.NoError(t, err)
		assert.Equal(t, cut[1]-cut[0], n)
	}

	require.NoError(t, s.Finish(frames))
	require.NoError(t, s.Close())

	got := testutil.ReadWAV(t, path)
	assert.Equal(t, 44100, got.SampleRate)
	assert.Equal(t, frames/2, got.Frames())
	for i, v := range got.Samples {
		require.Equal(t, int16(4321), v, "sample %d", i)
	}
}

func TestResample_FinishChecksInputCount(t *testing.T) {
	file, err := CreateFile(filepath.Join(t.TempDir(), "x.wav"), 1, 22050, false)
	require.NoError(t, err)
	s, err := NewResample(file, 44100)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Write(make([]byte, 200))
	require.NoError(t, err)
	require.ErrorIs(t, s.Finish(99), ErrFrameMismatch)
}

func TestResample_StrayBytes(t *testing.T) {
	file, err := CreateFile(filepath.Join(t.TempDir(), "x.wav"), 2, 22050, false)
	require.NoError(t, err)
	s, err := NewResample(file, 44100)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Write(make([]byte, 6))
	require.NoError(t, err)
	require.ErrorIs(t, s.Finish(1), ErrFrameMismatch)
}
