package stretch

import "math"

// CycleRatio returns the cycling ratio for the current output position. The
// sweep is driven by output frames written so far, so its period is stable in
// output time whatever ratio is in effect. Dual sessions sweep [0.25, 4] at
// half the rate of single sessions, which sweep [0.5, 2]. CycleOff returns 1.
func CycleRatio(outFrames uint64, sampleRate int, dual bool, mode CycleMode) float64 {
	var sign float64
	switch mode {
	case CycleUp:
		sign = 1
	case CycleDown:
		sign = -1
	default:
		return 1
	}

	seconds := float64(outFrames) / float64(sampleRate)
	if dual {
		return math.Sin(seconds/2)*sign*dualCycleDepth + dualCycleCentre
	}
	return math.Sin(seconds)*sign*singleCycleDepth + singleCycleCentre
}
