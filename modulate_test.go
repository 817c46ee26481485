package stretch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-audio-stretch/internal/testutil"
)

func TestCycleRatio_StaysInRange(t *testing.T) {
	const rate = 44100
	tests := []struct {
		name     string
		dual     bool
		lo, hi   float64
		periodSe float64
	}{
		{"single", false, 0.5, 2.0, 2 * math.Pi},
		{"dual", true, 0.25, 4.0, 4 * math.Pi},
	}
	for _, tt := range tests {
		for _, mode := range []CycleMode{CycleUp, CycleDown} {
			t.Run(tt.name+"/"+mode.String(), func(t *testing.T) {
				seenLo, seenHi := math.Inf(1), math.Inf(-1)
				end := uint64(tt.periodSe * rate)
				for pos := uint64(0); pos <= end; pos += 97 {
					r := CycleRatio(pos, rate, tt.dual, mode)
					testutil.AssertInRange(t, r, tt.lo-1e-12, tt.hi+1e-12)
					seenLo = math.Min(seenLo, r)
					seenHi = math.Max(seenHi, r)
				}
				// A full period visits both extremes.
				assert.InDelta(t, tt.lo, seenLo, 1e-3)
				assert.InDelta(t, tt.hi, seenHi, 1e-3)
			})
		}
	}
}

func TestCycleRatio_Direction(t *testing.T) {
	// A quarter period in, the sweep is at its extreme.
	quarterSingle := uint64(math.Round(math.Pi / 2 * 8000))
	assert.InDelta(t, 2.0, CycleRatio(quarterSingle, 8000, false, CycleUp), 1e-6)
	assert.InDelta(t, 0.5, CycleRatio(quarterSingle, 8000, false, CycleDown), 1e-6)

	quarterDual := uint64(math.Round(math.Pi * 8000))
	assert.InDelta(t, 4.0, CycleRatio(quarterDual, 8000, true, CycleUp), 1e-6)
	assert.InDelta(t, 0.25, CycleRatio(quarterDual, 8000, true, CycleDown), 1e-6)
}

func TestCycleRatio_StartsAtCentre(t *testing.T) {
	assert.InDelta(t, 1.25, CycleRatio(0, 44100, false, CycleUp), 0)
	assert.InDelta(t, 2.125, CycleRatio(0, 44100, true, CycleDown), 0)
	assert.InDelta(t, 1.0, CycleRatio(12345, 44100, true, CycleOff), 0)
}
