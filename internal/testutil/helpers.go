// Package testutil provides reusable test helpers for the stretch packages:
// signal generators, WAV fixtures and a few testify-based assertions.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// DBTolerance is the accepted error of level measurements in dB.
const DBTolerance = 0.01

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertFramesEqual verifies two interleaved buffers hold the same samples,
// reporting the first differing frame.
func AssertFramesEqual(t *testing.T, expected, actual []int16, channels int) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), "sample count mismatch") {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return assert.Fail(t, "frames differ",
				"frame %d channel %d: got %d, want %d", i/channels, i%channels, actual[i], expected[i])
		}
	}
	return true
}
