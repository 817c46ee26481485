package stretch

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Stats describes a finished run.
type Stats struct {
	InputRate  int
	OutputRate int // rate declared for the stretched stream
	Channels   int

	// SubFormat is the sub-format GUID of an extensible input, uuid.Nil otherwise.
	SubFormat uuid.UUID

	WindowFrames int
	MinPeriod    int
	MaxPeriod    int
	Dual         bool
	Fast         bool
	ScaledRate   bool

	InputFrames  uint64
	OutputFrames uint64

	// Window counts, gap mode only.
	SilenceFrames    int
	NonSilenceFrames int
	GapFramesUsed    int

	Capacity         int
	MaxStretchFrames int
	MaxFlushFrames   int
}

// Ratio returns the realised output/input length ratio.
func (s *Stats) Ratio() float64 {
	if s.InputFrames == 0 {
		return 0
	}
	return float64(s.OutputFrames) / float64(s.InputFrames)
}

// Report writes a human-readable summary of the run.
func (s *Stats) Report(w io.Writer) error {
	mode, instances, layout := "normal mode", "single instance", "mono"
	if s.Fast {
		mode = "fast mode"
	}
	if s.Dual {
		instances = "dual instance"
	}
	if s.Channels == 2 {
		layout = "stereo"
	}

	lines := []string{
		fmt.Sprintf("file sample rate is %d Hz (%s), buffer size is %d samples", s.InputRate, layout, s.WindowFrames),
	}
	if s.SubFormat != uuid.Nil {
		lines = append(lines, fmt.Sprintf("extensible format, sub-format %s", s.SubFormat))
	}
	lines = append(lines,
		fmt.Sprintf("stretch period range = %d to %d, %d channels, %s, %s", s.MinPeriod, s.MaxPeriod, s.Channels, mode, instances))

	if s.InputFrames > 0 {
		lines = append(lines, fmt.Sprintf("done, %d samples --> %d samples (ratio = %.3f)", s.InputFrames, s.OutputFrames, s.Ratio()))
		if s.ScaledRate {
			lines = append(lines, fmt.Sprintf("sample rate changed from %d Hz to %d Hz", s.InputRate, s.OutputRate))
		}
		lines = append(lines, fmt.Sprintf("max expected samples = %d, actually seen = %d stretch, %d flush",
			s.Capacity, s.MaxStretchFrames, s.MaxFlushFrames))
		if total := s.SilenceFrames + s.NonSilenceFrames; total > 0 {
			lines = append(lines, fmt.Sprintf("%d silence frames detected (%.2f%%), %d actually used (%.2f%%)",
				s.SilenceFrames, percent(s.SilenceFrames, total), s.GapFramesUsed, percent(s.GapFramesUsed, total)))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func percent(n, total int) float64 {
	return float64(n) * 100 / float64(total)
}
