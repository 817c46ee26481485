package stretch

import (
	"github.com/tphakala/go-audio-stretch/internal/tdhs"
)

// Engine is a time-stretch session. Implementations need not be safe for
// concurrent use.
type Engine interface {
	// OutputCapacity returns the most frames one Samples or Flush call can
	// produce for windows of at most maxFrames at ratios up to maxRatio. It is
	// called once, before any other call.
	OutputCapacity(maxFrames int, maxRatio float64) int

	// Samples stretches frames frames of interleaved input into out and
	// returns the number of frames generated.
	Samples(in []int16, frames int, out []int16, ratio float64) int

	// Flush drains buffered audio into out. It returns 0 once drained.
	Flush(out []int16) int

	// Close releases the session.
	Close()
}

// FrameReader supplies interleaved 16-bit frames. It returns 0 frames and a
// nil error at the end of input.
type FrameReader interface {
	ReadFrames(dst []int16) (int, error)
}

// EngineMode selects how the engine is configured.
type EngineMode struct {
	// Dual cascades two instances, extending the ratio range to [0.25, 4].
	Dual bool

	// Fast searches pitch periods on a decimated signal first.
	Fast bool
}

func (m EngineMode) flags() tdhs.Flags {
	var f tdhs.Flags
	if m.Dual {
		f |= tdhs.FlagDual
	}
	if m.Fast {
		f |= tdhs.FlagFast
	}
	return f
}

// NewEngine creates a time-domain harmonic scaling engine for pitch periods
// in [minPeriod, maxPeriod] frames, as returned by PeriodRange. The caller
// must Close it.
func NewEngine(minPeriod, maxPeriod, channels int, mode EngineMode) (Engine, error) {
	return newEngine(minPeriod, maxPeriod, channels, mode)
}

// newEngine is the constructor behind NewEngine; tests replace it.
var newEngine = func(minPeriod, maxPeriod, channels int, mode EngineMode) (Engine, error) {
	s, err := tdhs.New(minPeriod, maxPeriod, channels, mode.flags())
	if err != nil {
		return nil, err
	}
	return s, nil
}
