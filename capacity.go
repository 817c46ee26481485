package stretch

// MaxReachableRatio returns the highest ratio any stretch call of the run can
// use. Cycling sweeps the whole engine range regardless of the primary ratio.
func MaxReachableRatio(cfg Config, gapMode, dual bool) float64 {
	switch {
	case cfg.Cycle != CycleOff && dual:
		return dualCycleCeiling
	case cfg.Cycle != CycleOff:
		return singleCycleCeiling
	case gapMode:
		return max(cfg.Ratio, cfg.GapRatio)
	default:
		return cfg.Ratio
	}
}

// PlanCapacity asks the engine for the most frames one stretch or flush call
// can produce. The result is fixed for the session.
func PlanCapacity(e Engine, windowFrames int, maxRatio float64) int {
	return e.OutputCapacity(windowFrames, maxRatio)
}

// SelectMode chooses the engine configuration for an input rate. Dual
// instances are needed whenever a ratio the run uses leaves [0.5, 2].
func SelectMode(cfg Config, sampleRate int) EngineMode {
	return EngineMode{
		Dual: cfg.ForceDual || outsideSingle(cfg.Ratio) || (cfg.GapMode() && outsideSingle(cfg.GapRatio)),
		Fast: (cfg.ForceFast || sampleRate >= fastRateThreshold) && !cfg.ForceNormal,
	}
}

func outsideSingle(ratio float64) bool {
	return ratio < minSingleRatio || ratio > maxSingleRatio
}
