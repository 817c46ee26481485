package stretch

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// RMSLevelDB returns the RMS level of the first frames frames of samples in
// dB relative to a full-scale sine. Stereo is measured on the channel
// average. An all-zero window returns -Inf.
func RMSLevelDB(samples []int16, frames, channels int) float64 {
	if frames <= 0 {
		return math.Inf(-1)
	}

	mono := make([]float64, frames)
	if channels == 1 {
		for i := range mono {
			mono[i] = float64(samples[i])
		}
	} else {
		for i := range mono {
			mono[i] = float64(samples[i*channels]) + float64(samples[i*channels+1])
		}
		f64.Scale(mono, mono, 0.5)
	}

	sum := f64.DotProduct(mono, mono)
	if sum == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(sum/float64(frames)/fullScaleMeanSquare)
}

// SilenceDetector classifies windows as silent or not and applies the gap
// hysteresis: the gap ratio is used only once the window being stretched and
// its neighbours on either side are all quiet. A single loud window drops
// back immediately.
type SilenceDetector struct {
	threshold   float64
	consecutive int

	silent int
	loud   int
}

// NewSilenceDetector returns a detector for the given threshold in dB. The
// lead-in before the first window counts as one quiet window.
func NewSilenceDetector(thresholdDB float64) *SilenceDetector {
	return &SilenceDetector{
		threshold:   thresholdDB,
		consecutive: initialConsecutive,
	}
}

// Observe records the level of the next window.
func (d *SilenceDetector) Observe(levelDB float64) {
	if levelDB > d.threshold {
		d.consecutive = 0
		d.loud++
		return
	}
	d.consecutive++
	d.silent++
}

// Gap reports whether the gap ratio applies.
func (d *SilenceDetector) Gap() bool {
	return d.consecutive >= gapHysteresis
}

// SilenceFrames returns the number of windows observed as silent.
func (d *SilenceDetector) SilenceFrames() int { return d.silent }

// NonSilenceFrames returns the number of windows observed above the threshold.
func (d *SilenceDetector) NonSilenceFrames() int { return d.loud }
