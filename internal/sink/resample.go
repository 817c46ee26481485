package sink

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-stretch/internal/rescale"
	"github.com/tphakala/go-audio-stretch/internal/wavfile"
)

// Resample interprets the PCM written to it as audio at one rate and stores
// it in a File at another, converting in process.
type Resample struct {
	file     *File
	conv     *rescale.Converter
	channels int

	samples []int16
	carry   []byte // odd trailing byte between writes
	buf     []byte
}

// NewResample converts from fromRate to the rate of file.
func NewResample(file *File, fromRate int) (*Resample, error) {
	conv, err := rescale.New(fromRate, int(file.SampleRate()), file.channels)
	if err != nil {
		return nil, err
	}
	return &Resample{file: file, conv: conv, channels: file.channels}, nil
}

func (r *Resample) Write(p []byte) (int, error) {
	data := p
	if len(r.carry) > 0 {
		data = append(append([]byte(nil), r.carry...), p...)
		r.carry = r.carry[:0]
	}

	n := len(data) / wavfile.BytesPerSample
	whole := n - n%r.channels
	if cap(r.samples) < whole {
		r.samples = make([]int16, whole)
	}
	r.samples = r.samples[:whole]
	wavfile.DecodePCM(r.samples, data)
	r.carry = append(r.carry, data[whole*wavfile.BytesPerSample:]...)

	if err := r.emit(r.conv.Process(r.samples)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (r *Resample) emit(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	r.buf = wavfile.EncodePCM(r.buf, samples)
	_, err := r.file.Write(r.buf)
	return err
}

// Finish drains the converter and finalizes the file. frames is the count
// written at the source rate; the header records the converted count.
func (r *Resample) Finish(frames uint32) error {
	if len(r.carry) > 0 {
		return fmt.Errorf("%w: %d stray bytes", ErrFrameMismatch, len(r.carry))
	}
	if in, _ := r.conv.Frames(); in != uint64(frames) {
		return fmt.Errorf("%w: %d declared, %d written", ErrFrameMismatch, frames, in)
	}
	if err := r.emit(r.conv.Flush()); err != nil {
		return err
	}

	out := r.file.Frames()
	if out > math.MaxUint32 {
		return fmt.Errorf("%w: %d frames", wavfile.ErrDataTooLarge, out)
	}
	return r.file.Finish(uint32(out))
}

// Close closes the underlying file.
func (r *Resample) Close() error {
	return r.file.Close()
}
