// Package tdhs implements time-domain harmonic scaling: it changes the
// duration of 16-bit PCM audio without changing its pitch by repeating or
// dropping whole pitch periods and crossfading across the splice.
//
// A Stretcher is driven like a streaming filter:
//
//	s, err := tdhs.New(minPeriod, maxPeriod, channels, 0)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	out := make([]int16, s.OutputCapacity(window, maxRatio)*channels)
//	for ... {
//	    n := s.Samples(in, frames, out, ratio)
//	    write(out[:n*channels])
//	}
//	for n := s.Flush(out); n > 0; n = s.Flush(out) {
//	    write(out[:n*channels])
//	}
//
// A single instance handles ratios in [0.5, 2]. FlagDual cascades two
// instances, each running at the square root of the requested ratio, which
// extends the range to [0.25, 4].
//
// A Stretcher is not safe for concurrent use.
package tdhs

import (
	"errors"
	"fmt"
	"math"
)

// Flags select the engine configuration.
type Flags uint8

const (
	// FlagDual cascades two instances for ratios outside [0.5, 2].
	FlagDual Flags = 1 << iota

	// FlagFast searches periods on a decimated signal first.
	FlagFast
)

// ErrInvalidParams indicates New was called with an unusable period range or channel count.
var ErrInvalidParams = errors.New("invalid stretch parameters")

// Stretcher is one stretch session.
type Stretcher struct {
	channels int

	first  *instance
	second *instance // nil unless FlagDual

	// Dual mode only: stage one output for one chunk.
	inter []int16

	lastRatio    float64
	firstDrained bool
	closed       bool
}

// New creates a session for periods in [minPeriodFrames, maxPeriodFrames].
func New(minPeriodFrames, maxPeriodFrames, channels int, flags Flags) (*Stretcher, error) {
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidParams, channels)
	}
	if minPeriodFrames < minPeriod || maxPeriodFrames <= minPeriodFrames {
		return nil, fmt.Errorf("%w: period range %d to %d", ErrInvalidParams, minPeriodFrames, maxPeriodFrames)
	}

	fast := flags&FlagFast != 0
	s := &Stretcher{
		channels:  channels,
		first:     newInstance(minPeriodFrames, maxPeriodFrames, channels, fast),
		lastRatio: 1,
	}

	if flags&FlagDual != 0 {
		s.second = newInstance(minPeriodFrames, maxPeriodFrames, channels, fast)
		chunkOut := s.first.capacity(s.first.longest, math.Sqrt(maxDualRatio))
		s.inter = make([]int16, chunkOut*channels)
	}

	return s, nil
}

// Dual reports whether the session cascades two instances.
func (s *Stretcher) Dual() bool {
	return s.second != nil
}

// OutputCapacity returns the largest frame count a single Samples or Flush
// call can produce when fed at most maxFrames frames per call at ratios no
// higher than maxRatio.
func (s *Stretcher) OutputCapacity(maxFrames int, maxRatio float64) int {
	if s.second == nil {
		return s.first.capacity(maxFrames, maxRatio)
	}
	stage := math.Sqrt(maxRatio)
	return s.second.capacity(s.first.capacity(maxFrames, stage), stage)
}

// Samples stretches frames interleaved frames from in by ratio and writes the
// result to out. It returns the number of frames generated. Frames beyond
// len(out) are counted but not written, so a caller comparing the result
// against OutputCapacity can detect an undersized buffer.
func (s *Stretcher) Samples(in []int16, frames int, out []int16, ratio float64) int {
	if s.closed || frames <= 0 {
		return 0
	}
	s.lastRatio = ratio
	em := emitter{out: out, channels: s.channels}

	if s.second == nil {
		s.first.process(in[:frames*s.channels], &em, clamp(ratio, minSingleRatio, maxSingleRatio))
		return em.frames
	}

	stage := math.Sqrt(clamp(ratio, minDualRatio, maxDualRatio))
	chunk := s.first.longest * s.channels
	samples := in[:frames*s.channels]
	for len(samples) > 0 {
		n := min(chunk, len(samples))
		s.cascade(samples[:n], &em, stage)
		samples = samples[n:]
	}
	return em.frames
}

// cascade runs one chunk through both instances.
func (s *Stretcher) cascade(chunk []int16, em *emitter, stage float64) {
	mid := emitter{out: s.inter, channels: s.channels}
	s.first.process(chunk, &mid, stage)
	s.second.process(s.inter[:mid.written()*s.channels], em, stage)
}

// Flush drains buffered frames into out. It must be called repeatedly until
// it returns 0.
func (s *Stretcher) Flush(out []int16) int {
	if s.closed {
		return 0
	}
	em := emitter{out: out, channels: s.channels}

	if s.second == nil {
		s.first.drain(&em, len(out)/s.channels)
		return em.frames
	}

	// Stage one drains into stage two one chunk at a time until stage two
	// produces something or stage one is empty.
	stage := math.Sqrt(clamp(s.lastRatio, minDualRatio, maxDualRatio))
	for !s.firstDrained {
		mid := emitter{out: s.inter, channels: s.channels}
		s.first.drain(&mid, s.first.longest)
		if mid.frames == 0 {
			s.firstDrained = true
			break
		}
		s.second.process(s.inter[:mid.written()*s.channels], &em, stage)
		if em.frames > 0 {
			return em.frames
		}
	}

	s.second.drain(&em, len(out)/s.channels)
	return em.frames
}

// Close releases the session buffers. Further calls return 0.
func (s *Stretcher) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.first.release()
	if s.second != nil {
		s.second.release()
	}
	s.inter = nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
