package testutil

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

const (
	wavFormatPCM   = 1
	bitsPerSample  = 16
	bytesPerSample = 2
)

// WriteWAV encodes interleaved 16-bit samples into a PCM WAV file at path.
func WriteWAV(t *testing.T, path string, sampleRate, channels int, samples []int16) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	enc := wav.NewEncoder(f, sampleRate, bitsPerSample, channels, wavFormatPCM)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

// DecodedWAV is the content of a WAV file read back through go-audio/wav.
type DecodedWAV struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    []int16
}

// Frames returns the number of sample frames.
func (d *DecodedWAV) Frames() int {
	return len(d.Samples) / d.Channels
}

// ReadWAV decodes the WAV file at path with go-audio/wav.
func ReadWAV(t *testing.T, path string) *DecodedWAV {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile(), "invalid WAV file: %s", path)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return &DecodedWAV{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Samples:    samples,
	}
}

// Chunk is a raw RIFF chunk used to assemble hand-crafted containers.
type Chunk struct {
	ID   string
	Body []byte
	// Size overrides the declared size when non-zero.
	Size uint32
}

// BuildRIFF assembles a RIFF/WAVE byte stream from chunks, padding odd bodies.
func BuildRIFF(chunks ...Chunk) []byte {
	body := []byte("WAVE")
	for _, c := range chunks {
		size := c.Size
		if size == 0 {
			size = uint32(len(c.Body))
		}
		body = append(body, c.ID...)
		body = binary.LittleEndian.AppendUint32(body, size)
		body = append(body, c.Body...)
		if len(c.Body)%2 == 1 {
			body = append(body, 0)
		}
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

// FmtChunk returns a 16-byte fmt chunk.
func FmtChunk(tag uint16, channels, sampleRate, blockAlign, bits int) Chunk {
	b := make([]byte, 0, 16)
	b = binary.LittleEndian.AppendUint16(b, tag)
	b = binary.LittleEndian.AppendUint16(b, uint16(channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate*blockAlign))
	b = binary.LittleEndian.AppendUint16(b, uint16(blockAlign))
	b = binary.LittleEndian.AppendUint16(b, uint16(bits))
	return Chunk{ID: "fmt ", Body: b}
}

// PCMSubFormatGUID is KSDATAFORMAT_SUBTYPE_PCM in on-disk byte order.
var PCMSubFormatGUID = []byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
}

// ExtensibleFmtChunk returns a 40-byte WAVE_FORMAT_EXTENSIBLE fmt chunk.
func ExtensibleFmtChunk(channels, sampleRate, containerBits, validBits int, guid []byte) Chunk {
	blockAlign := channels * containerBits / 8
	c := FmtChunk(0xfffe, channels, sampleRate, blockAlign, containerBits)
	b := c.Body
	b = binary.LittleEndian.AppendUint16(b, 22)
	b = binary.LittleEndian.AppendUint16(b, uint16(validBits))
	b = binary.LittleEndian.AppendUint32(b, 0x3)
	b = append(b, guid...)
	c.Body = b
	return c
}

// DataChunk returns a data chunk holding the little-endian samples.
func DataChunk(samples []int16) Chunk {
	b := make([]byte, 0, len(samples)*bytesPerSample)
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	return Chunk{ID: "data", Body: b}
}
