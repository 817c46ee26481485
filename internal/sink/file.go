// Package sink provides the byte sinks the stretch driver writes PCM into: a
// WAV file, a WAV file behind an in-process rate converter, and the stdin of
// an external command.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tphakala/go-audio-stretch/internal/wavfile"
)

// ErrFrameMismatch indicates Finish was given a frame count that disagrees
// with the bytes actually written.
var ErrFrameMismatch = errors.New("frame count does not match data written")

// File writes a WAV file. The header is written with a zero frame count on
// creation and rewritten with the real count by Finish.
type File struct {
	f          *os.File
	w          *bufio.Writer
	path       string
	channels   int
	sampleRate uint32
	written    uint64 // PCM bytes
	closed     bool
}

// CreateFile creates path and writes a placeholder header. Unless overwrite
// is set an existing file is never replaced; the error then matches
// fs.ErrExist.
func CreateFile(path string, channels int, sampleRate uint32, overwrite bool) (*File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, outputFileMode)
	if err != nil {
		return nil, fmt.Errorf("can't open file %q for writing: %w", path, err)
	}

	s := &File{
		f:          f,
		w:          bufio.NewWriterSize(f, writeBufferSize),
		path:       path,
		channels:   channels,
		sampleRate: sampleRate,
	}
	if err := wavfile.WriteHeader(s.w, 0, channels, wavfile.BytesPerSample, sampleRate); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the file name.
func (s *File) Path() string { return s.path }

// SampleRate returns the rate declared in the header.
func (s *File) SampleRate() uint32 { return s.sampleRate }

// Frames returns the number of whole frames written so far.
func (s *File) Frames() uint64 {
	return s.written / uint64(s.channels*wavfile.BytesPerSample)
}

func (s *File) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.written += uint64(n)
	if err != nil {
		return n, fmt.Errorf("write %q: %w", s.path, err)
	}
	return n, nil
}

// Finish flushes buffered data and rewrites the header for frames frames.
func (s *File) Finish(frames uint32) error {
	if got := s.Frames(); got != uint64(frames) {
		return fmt.Errorf("%w: %d declared, %d written", ErrFrameMismatch, frames, got)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush %q: %w", s.path, err)
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %q: %w", s.path, err)
	}
	return wavfile.WriteHeader(s.f, frames, s.channels, wavfile.BytesPerSample, s.sampleRate)
}

// Close closes the file. It does not flush; call Finish first.
func (s *File) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}
