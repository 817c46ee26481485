package rescale

// Cubic Hermite (Catmull-Rom) coefficients
const (
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

const (
	// cubicPoints is the interpolation window in frames.
	cubicPoints = 4

	// tailFrames is how many edge-replicated frames Flush appends so the
	// last real frame can be interpolated.
	tailFrames = 2

	maxChannels = 2

	minInt16 = -32768
	maxInt16 = 32767
)
