// Package wavfile reads and writes the RIFF/WAVE container used by the
// stretch driver: 16-bit integer PCM, mono or stereo.
//
// Parsing is done field by field from the little-endian chunk bodies rather
// than by overlaying a struct, so only the fields the driver needs are
// exposed on Descriptor.
package wavfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
)

// ErrFormat is the parent of every container error returned by ParseHeader.
var ErrFormat = errors.New("wav format error")

// Container errors. All of them match ErrFormat with errors.Is.
var (
	ErrInvalidFile       = fmt.Errorf("%w: not a valid .WAV file", ErrFormat)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported .WAV format", ErrFormat)
	ErrNoSamples         = fmt.Errorf("%w: no audio samples, file is probably corrupt", ErrFormat)
)

// ErrDataTooLarge is returned by WriteHeader when the data would overflow the 32-bit RIFF sizes.
var ErrDataTooLarge = errors.New("wav data exceeds RIFF size limit")

// Descriptor describes the PCM stream found in a WAV file.
type Descriptor struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	BlockAlign    int

	// FormatTag is the raw tag from the fmt chunk; SubFormat is the
	// effective format code after resolving WAVE_FORMAT_EXTENSIBLE.
	FormatTag uint16
	SubFormat uint16

	// Extensible-only fields, zero otherwise.
	ValidBits     uint16
	ChannelMask   uint32
	SubFormatGUID uuid.UUID

	// Frames is the number of sample frames declared by the data chunk.
	Frames uint32
}

// Extensible reports whether the fmt chunk carried the 40-byte extensible layout.
func (d *Descriptor) Extensible() bool {
	return d.FormatTag == FormatExtensible && d.SubFormatGUID != uuid.Nil
}

// DataBytes returns the size of the data chunk in bytes.
func (d *Descriptor) DataBytes() uint32 {
	return d.Frames * uint32(d.BlockAlign)
}

// ParseHeader reads the RIFF header and every chunk up to and including the
// data chunk header. On success r is positioned at the first PCM byte.
//
// Unknown chunks are skipped, honoring the RIFF 2-byte alignment.
func ParseHeader(r io.Reader) (*Descriptor, error) {
	var riff [riffHeaderSize]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("%w: short RIFF header", ErrInvalidFile)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE tag", ErrInvalidFile)
	}

	var (
		d       Descriptor
		fmtSeen bool
		hdr     [chunkHeaderSize]byte
	)

	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: truncated before data chunk", ErrInvalidFile)
		}
		id := string(hdr[:chunkIDSize])
		size := binary.LittleEndian.Uint32(hdr[chunkIDSize:])

		switch id {
		case "fmt ":
			if err := parseFormat(r, size, &d); err != nil {
				return nil, err
			}
			fmtSeen = true

		case "data":
			if !fmtSeen {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrInvalidFile)
			}
			if size == 0 {
				return nil, ErrNoSamples
			}
			if size%uint32(d.BlockAlign) != 0 {
				return nil, fmt.Errorf("%w: data size %d is not a multiple of block align %d",
					ErrInvalidFile, size, d.BlockAlign)
			}
			d.Frames = size / uint32(d.BlockAlign)
			return &d, nil

		default:
			if err := skipChunk(r, size); err != nil {
				return nil, err
			}
		}
	}
}

// skipChunk consumes an unknown chunk body plus its pad byte.
func skipChunk(r io.Reader, size uint32) error {
	padded := (int64(size) + 1) &^ 1
	n, err := io.CopyN(io.Discard, r, padded)
	if err != nil || n != padded {
		return fmt.Errorf("%w: truncated chunk", ErrInvalidFile)
	}
	return nil
}

func parseFormat(r io.Reader, size uint32, d *Descriptor) error {
	if size < fmtChunkMinSize || size > fmtChunkMaxSize {
		return fmt.Errorf("%w: fmt chunk size %d", ErrInvalidFile, size)
	}

	var body [fmtChunkMaxSize]byte
	if _, err := io.ReadFull(r, body[:size]); err != nil {
		return fmt.Errorf("%w: truncated fmt chunk", ErrInvalidFile)
	}

	le := binary.LittleEndian
	d.FormatTag = le.Uint16(body[offFormatTag:])
	d.Channels = int(le.Uint16(body[offChannels:]))
	d.SampleRate = int(le.Uint32(body[offSampleRate:]))
	d.BlockAlign = int(le.Uint16(body[offBlockAlign:]))
	d.BitsPerSample = int(le.Uint16(body[offBitsPerSample:]))

	d.SubFormat = d.FormatTag
	if size == fmtChunkMaxSize {
		d.ValidBits = le.Uint16(body[offValidBits:])
		d.ChannelMask = le.Uint32(body[offChannelMask:])
		if d.FormatTag == FormatExtensible {
			d.SubFormat = le.Uint16(body[offSubFormat:])
			d.SubFormatGUID = guidFromLE(body[offSubFormat : offSubFormat+guidSize])
		}
		if d.ValidBits != 0 {
			d.BitsPerSample = int(d.ValidBits)
		}
	}

	if d.BitsPerSample != SupportedBits {
		return fmt.Errorf("%w: not a 16-bit file (%d bits)", ErrUnsupportedFormat, d.BitsPerSample)
	}
	if d.Channels < MinChannels || d.Channels > MaxChannels {
		return fmt.Errorf("%w: not a mono or stereo file (%d channels)", ErrUnsupportedFormat, d.Channels)
	}
	if d.BlockAlign != d.Channels*BytesPerSample {
		return fmt.Errorf("%w: block align %d for %d channels", ErrInvalidFile, d.BlockAlign, d.Channels)
	}
	if d.SubFormat != FormatPCM {
		return fmt.Errorf("%w: not a PCM file (format 0x%04x)", ErrUnsupportedFormat, d.SubFormat)
	}
	if d.SampleRate < MinSampleRate || d.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate is %d, must be %d to %d",
			ErrUnsupportedFormat, d.SampleRate, MinSampleRate, MaxSampleRate)
	}
	return nil
}

// guidFromLE converts an on-disk Windows GUID (first three fields little
// endian) into RFC 4122 byte order.
func guidFromLE(b []byte) uuid.UUID {
	var u uuid.UUID
	copy(u[:], b)
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	return u
}

// MaxFrames is the largest frame count a canonical header can describe.
func MaxFrames(channels, bytesPerSample int) uint32 {
	return (math.MaxUint32 - (HeaderSize - chunkHeaderSize)) / uint32(channels*bytesPerSample)
}

// WriteHeader emits a canonical 44-byte PCM header describing frames sample
// frames. It is called once with frames == 0 as a placeholder and again after
// processing, once the real count is known.
func WriteHeader(w io.Writer, frames uint32, channels, bytesPerSample int, sampleRate uint32) error {
	blockAlign := uint32(channels * bytesPerSample)
	if frames > MaxFrames(channels, bytesPerSample) {
		return fmt.Errorf("%w: %d frames", ErrDataTooLarge, frames)
	}
	dataBytes := frames * blockAlign

	var h [HeaderSize]byte
	le := binary.LittleEndian

	copy(h[0:4], "RIFF")
	le.PutUint32(h[4:8], riffFormTypeSize+chunkHeaderSize+pcmFmtChunkSize+chunkHeaderSize+dataBytes)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	le.PutUint32(h[16:20], pcmFmtChunkSize)
	le.PutUint16(h[20:22], FormatPCM)
	le.PutUint16(h[22:24], uint16(channels))
	le.PutUint32(h[24:28], sampleRate)
	le.PutUint32(h[28:32], sampleRate*blockAlign)
	le.PutUint16(h[32:34], uint16(blockAlign))
	le.PutUint16(h[34:36], uint16(bytesPerSample*bitsPerByte))

	copy(h[36:40], "data")
	le.PutUint32(h[40:44], dataBytes)

	if _, err := w.Write(h[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	return nil
}
