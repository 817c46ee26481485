package stretch

// Defaults, matching the command line tool.
const (
	DefaultRatio       = 1.0
	DefaultUpperHz     = 333
	DefaultLowerHz     = 55
	DefaultWindowMs    = 25
	DefaultThresholdDB = -40.0
)

// Ratio limits
const (
	minRatio = 0.25
	maxRatio = 4.0

	// A single engine instance covers [minSingleRatio, maxSingleRatio].
	minSingleRatio = 0.5
	maxSingleRatio = 2.0
)

// Configuration limits
const (
	minUpperHz     = 40 // exclusive
	minLowerHz     = 20
	minWindowMs    = 1
	maxWindowMs    = 100
	minThresholdDB = -70.0
	maxThresholdDB = -10.0
)

// Engine selection
const (
	// fastRateThreshold is the input rate at which fast period detection is used by default.
	fastRateThreshold = 32000

	msPerSecond = 1000.0
)

// Silence detection
const (
	// gapHysteresis is the number of consecutive quiet windows that enable the gap ratio.
	gapHysteresis = 3

	// initialConsecutive counts the lead-in before the first window as quiet.
	initialConsecutive = 1

	// fullScaleMeanSquare is the 0 dB reference of RMSLevelDB.
	fullScaleMeanSquare = 32768.0 * 32767.0 * 0.5
)

// Ratio cycling profiles
const (
	dualCycleDepth    = 1.875
	dualCycleCentre   = 2.125
	singleCycleDepth  = 0.75
	singleCycleCentre = 1.25

	// Ceilings passed to the capacity planner while cycling.
	dualCycleCeiling   = 4.0
	singleCycleCeiling = 2.0
)

// rateRounding rounds the scaled output rate to the nearest hertz.
const rateRounding = 0.5
