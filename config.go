package stretch

import (
	"fmt"
	"strings"
)

// CycleMode selects sinusoidal ratio cycling.
type CycleMode int

const (
	// CycleOff uses the configured ratios.
	CycleOff CycleMode = iota

	// CycleUp starts the sweep above the centre ratio.
	CycleUp

	// CycleDown starts the sweep below the centre ratio.
	CycleDown
)

func (m CycleMode) String() string {
	switch m {
	case CycleOff:
		return "off"
	case CycleUp:
		return "up"
	case CycleDown:
		return "down"
	default:
		return fmt.Sprintf("CycleMode(%d)", int(m))
	}
}

// RescaleMode selects how a scaled output rate is delivered when ScaleRate is set.
type RescaleMode int

const (
	// RescaleHeader only declares the scaled rate in the output header.
	RescaleHeader RescaleMode = iota

	// RescaleResample converts the scaled-rate stream back to the input rate in process.
	RescaleResample

	// RescaleExec pipes raw PCM at the scaled rate to an external command.
	RescaleExec
)

var rescaleModeNames = map[RescaleMode]string{
	RescaleHeader:   "header",
	RescaleResample: "resample",
	RescaleExec:     "exec",
}

func (m RescaleMode) String() string {
	if name, ok := rescaleModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("RescaleMode(%d)", int(m))
}

// ParseRescaleMode parses "header", "resample" or "exec".
func ParseRescaleMode(s string) (RescaleMode, error) {
	for mode, name := range rescaleModeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return RescaleHeader, fmt.Errorf("%w: unknown rescale mode %q", ErrInvalidConfig, s)
}

// Config holds the parameters of one stretch run. It is passed by value and
// never modified once the run starts.
type Config struct {
	// Ratio is the primary stretch ratio, 0.25 to 4.0. Values above 1 lengthen.
	Ratio float64

	// GapRatio is applied to silent passages. Zero disables gap mode.
	GapRatio float64

	// UpperHz and LowerHz bound the pitch periods the engine searches.
	UpperHz int
	LowerHz int

	// WindowMs is the analysis window length, 1 to 100 ms.
	WindowMs int

	// ThresholdDB is the silence threshold, -70 to -10 dB.
	ThresholdDB float64

	Cycle CycleMode

	ForceDual   bool
	ForceFast   bool
	ForceNormal bool // wins over ForceFast

	// ScaleRate multiplies the output sample rate by Ratio so that the
	// stretched audio plays in the original duration.
	ScaleRate bool
	Rescale   RescaleMode

	// RescaleCommand is the argument template for RescaleExec. The
	// placeholders {rate}, {outrate}, {channels} and {output} are substituted.
	RescaleCommand []string

	Overwrite bool
}

// DefaultConfig returns the command line defaults.
func DefaultConfig() Config {
	return Config{
		Ratio:       DefaultRatio,
		UpperHz:     DefaultUpperHz,
		LowerHz:     DefaultLowerHz,
		WindowMs:    DefaultWindowMs,
		ThresholdDB: DefaultThresholdDB,
	}
}

// Validate checks every parameter that does not depend on the input file.
func (c *Config) Validate() error {
	if c.Ratio < minRatio || c.Ratio > maxRatio {
		return fmt.Errorf("%w: ratio must be from %v to %v", ErrInvalidConfig, minRatio, maxRatio)
	}

	if c.GapRatio != 0 && (c.GapRatio < minRatio || c.GapRatio > maxRatio) {
		return fmt.Errorf("%w: gap/silence ratio must be from %v to %v", ErrInvalidConfig, minRatio, maxRatio)
	}

	if c.UpperHz <= minUpperHz {
		return fmt.Errorf("%w: upper frequency must be at least %d Hz", ErrInvalidConfig, minUpperHz)
	}

	if c.LowerHz < minLowerHz {
		return fmt.Errorf("%w: lower frequency must be at least %d Hz", ErrInvalidConfig, minLowerHz)
	}

	if c.WindowMs < minWindowMs || c.WindowMs > maxWindowMs {
		return fmt.Errorf("%w: audio window is from %d to %d ms", ErrInvalidConfig, minWindowMs, maxWindowMs)
	}

	if c.ThresholdDB < minThresholdDB || c.ThresholdDB > maxThresholdDB {
		return fmt.Errorf("%w: silence threshold must be from %v to %v dB", ErrInvalidConfig, maxThresholdDB, minThresholdDB)
	}

	if c.Cycle < CycleOff || c.Cycle > CycleDown {
		return fmt.Errorf("%w: unknown cycle mode %d", ErrInvalidConfig, int(c.Cycle))
	}

	if _, ok := rescaleModeNames[c.Rescale]; !ok {
		return fmt.Errorf("%w: unknown rescale mode %d", ErrInvalidConfig, int(c.Rescale))
	}

	if c.ScaleRate && c.Rescale == RescaleExec && len(c.RescaleCommand) == 0 {
		return fmt.Errorf("%w: exec rescaling needs a command", ErrInvalidConfig)
	}

	return nil
}

// GapMode reports whether silent passages get their own ratio. Gap mode and
// cycling are mutually exclusive.
func (c *Config) GapMode() bool {
	return c.GapRatio != 0 && c.Cycle == CycleOff && c.GapRatio != c.Ratio
}

// Warnings returns advisory messages about settings that have no effect.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Ratio == 1.0 && !c.GapMode() && c.Cycle == CycleOff {
		warnings = append(warnings, "a ratio of 1.0 will do nothing but copy the WAV file!")
	}
	if c.Ratio != 1.0 && c.Cycle != CycleOff && !c.ScaleRate {
		warnings = append(warnings, "specifying ratio with cycling doesn't do anything (unless scaling rate)")
	}
	return warnings
}
