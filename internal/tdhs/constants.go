package tdhs

// Ratio limits per configuration
const (
	minSingleRatio = 0.5
	maxSingleRatio = 2.0
	minDualRatio   = 0.25
	maxDualRatio   = 4.0
)

// Period search
const (
	// fastDecimation is the decimation factor of the coarse search in fast mode.
	fastDecimation = 2

	// refineSpan is how far the fast search refines around the coarse period.
	refineSpan = 1

	// minPeriod is the shortest period an instance accepts.
	minPeriod = 2
)

// Buffering
const (
	// analysisPeriods is how many longest periods must be buffered before a step runs.
	analysisPeriods = 2

	// fifoPeriods sizes the input FIFO: analysisPeriods of backlog plus one chunk.
	fifoPeriods = analysisPeriods + 1

	maxChannels = 2
)
