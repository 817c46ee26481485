package stretch

import "fmt"

// PeriodRange maps a pitch range in Hz to the period range in frames the
// engine searches. Periods use integer division, so the bounds round toward
// shorter periods.
func PeriodRange(sampleRate, lowerHz, upperHz int) (minPeriod, maxPeriod int, err error) {
	if upperHz <= minUpperHz {
		return 0, 0, fmt.Errorf("%w: upper frequency must be at least %d Hz", ErrInvalidConfig, minUpperHz)
	}
	if lowerHz < minLowerHz {
		return 0, 0, fmt.Errorf("%w: lower frequency must be at least %d Hz", ErrInvalidConfig, minLowerHz)
	}
	if upperHz < 2*lowerHz || upperHz >= sampleRate/2 {
		return 0, 0, fmt.Errorf("%w: invalid frequencies specified (%d to %d Hz at %d Hz)",
			ErrInvalidConfig, lowerHz, upperHz, sampleRate)
	}

	return sampleRate / upperHz, sampleRate / lowerHz, nil
}

// WindowFrames returns the analysis window length in frames.
func WindowFrames(sampleRate, windowMs int) int {
	return int(float64(sampleRate) * (float64(windowMs) / msPerSecond))
}
