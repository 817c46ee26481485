package stretch

import (
	"fmt"
	"io"

	"github.com/tphakala/go-audio-stretch/internal/wavfile"
)

// Plan is everything Process needs to know about a run, resolved from the
// Config and the input header.
type Plan struct {
	Channels     int
	SampleRate   int
	WindowFrames int

	// Capacity comes from PlanCapacity and bounds every engine call.
	Capacity int

	Ratio       float64
	GapRatio    float64
	GapMode     bool
	ThresholdDB float64
	Cycle       CycleMode
	Dual        bool
}

func (p *Plan) validate() error {
	if p.Channels < 1 || p.WindowFrames < 1 || p.Capacity < 1 || p.SampleRate < 1 {
		return fmt.Errorf("%w: incomplete plan (channels %d, window %d, capacity %d, rate %d)",
			ErrInvalidConfig, p.Channels, p.WindowFrames, p.Capacity, p.SampleRate)
	}
	return nil
}

// Process reads src window by window, stretches each window with e and writes
// the result to w as little-endian PCM, then drains the engine. Every engine
// call is checked against p.Capacity before anything is written; a violation
// returns a *CapacityError.
//
// In gap mode each window is measured one step ahead of being stretched, so
// the choice of ratio for a window can take the following window into account.
func Process(src FrameReader, e Engine, w io.Writer, p Plan) (*Stats, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	ch := p.Channels
	stats := &Stats{
		InputRate:    p.SampleRate,
		Channels:     ch,
		WindowFrames: p.WindowFrames,
		Capacity:     p.Capacity,
		Dual:         p.Dual,
	}

	current := make([]int16, p.WindowFrames*ch)
	var lookahead []int16
	if p.GapMode {
		lookahead = make([]int16, p.WindowFrames*ch)
	}
	out := &pcmWriter{w: w, samples: make([]int16, p.Capacity*ch), channels: ch}
	detector := NewSilenceDetector(p.ThresholdDB)

	ratio := p.Ratio
	pending := 0
	for {
		dst := current
		if p.GapMode {
			dst = lookahead
		}
		n, err := src.ReadFrames(dst)
		if err != nil {
			return stats, fmt.Errorf("read input: %w", err)
		}
		if !p.GapMode && n == 0 {
			break
		}
		stats.InputFrames += uint64(n)

		if p.GapMode {
			if n > 0 {
				detector.Observe(RMSLevelDB(lookahead, n, ch))
			}
		} else {
			pending = n
		}

		if p.Cycle != CycleOff {
			ratio = CycleRatio(stats.OutputFrames, p.SampleRate, p.Dual, p.Cycle)
		}

		if pending > 0 {
			r := ratio
			if detector.Gap() {
				r = p.GapRatio
				stats.GapFramesUsed++
			}
			generated := e.Samples(current, pending, out.samples, r)
			if generated > p.Capacity {
				return stats, &CapacityError{Op: "stretch", Generated: generated, Capacity: p.Capacity}
			}
			stats.MaxStretchFrames = max(stats.MaxStretchFrames, generated)
			if err := out.write(generated); err != nil {
				return stats, err
			}
			stats.OutputFrames += uint64(generated)
		}

		if p.GapMode {
			if n == 0 {
				break
			}
			copy(current, lookahead[:n*ch])
			pending = n
		}
	}

	for {
		flushed := e.Flush(out.samples)
		if flushed == 0 {
			break
		}
		if flushed > p.Capacity {
			return stats, &CapacityError{Op: "flush", Generated: flushed, Capacity: p.Capacity}
		}
		stats.MaxFlushFrames = max(stats.MaxFlushFrames, flushed)
		if err := out.write(flushed); err != nil {
			return stats, err
		}
		stats.OutputFrames += uint64(flushed)
	}

	stats.SilenceFrames = detector.SilenceFrames()
	stats.NonSilenceFrames = detector.NonSilenceFrames()
	return stats, nil
}

// pcmWriter encodes the engine output buffer and hands it to the sink.
type pcmWriter struct {
	w        io.Writer
	samples  []int16
	channels int
	buf      []byte
}

func (p *pcmWriter) write(frames int) error {
	p.buf = wavfile.EncodePCM(p.buf[:0], p.samples[:frames*p.channels])
	if _, err := p.w.Write(p.buf); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
