package wavfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// PCMReader reads interleaved 16-bit frames from a data chunk, never past the
// frame count the chunk declared.
type PCMReader struct {
	r          io.Reader
	channels   int
	blockAlign int
	remaining  uint32
	buf        []byte
}

// NewPCMReader returns a reader positioned by ParseHeader at the first PCM byte.
func NewPCMReader(r io.Reader, d *Descriptor) *PCMReader {
	return &PCMReader{
		r:          r,
		channels:   d.Channels,
		blockAlign: d.BlockAlign,
		remaining:  d.Frames,
	}
}

// Remaining returns the number of declared frames not read yet.
func (p *PCMReader) Remaining() uint32 {
	return p.remaining
}

// ReadFrames fills dst with up to len(dst)/channels whole frames and returns
// the frame count. A stream that ends early yields the complete frames read
// so far; (0, nil) means end of input.
func (p *PCMReader) ReadFrames(dst []int16) (int, error) {
	want := len(dst) / p.channels
	if uint32(want) > p.remaining {
		want = int(p.remaining)
	}
	if want == 0 {
		return 0, nil
	}

	need := want * p.blockAlign
	if cap(p.buf) < need {
		p.buf = make([]byte, need)
	}
	buf := p.buf[:need]

	n, err := io.ReadFull(p.r, buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// Truncated data chunk: keep whole frames and stop reading.
		p.remaining = 0
	default:
		return 0, fmt.Errorf("read pcm data: %w", err)
	}

	frames := n / p.blockAlign
	if p.remaining > 0 {
		p.remaining -= uint32(frames)
	}
	DecodePCM(dst[:frames*p.channels], buf[:frames*p.blockAlign])
	return frames, nil
}

// DecodePCM converts little-endian 16-bit samples from src into dst.
func DecodePCM(dst []int16, src []byte) {
	for i := range dst {
		dst[i] = int16(binary.LittleEndian.Uint16(src[i*BytesPerSample:]))
	}
}

// EncodePCM encodes src as little-endian bytes into dst, reallocating when
// dst is too small, and returns the encoded slice.
func EncodePCM(dst []byte, src []int16) []byte {
	need := len(src) * BytesPerSample
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]
	for i, s := range src {
		binary.LittleEndian.PutUint16(dst[i*BytesPerSample:], uint16(s))
	}
	return dst
}
