package testutil

import "math"

// Sine returns frames of an interleaved sine tone with the same value on every channel.
func Sine(frames, channels, sampleRate int, freq, amplitude float64) []int16 {
	out := make([]int16, frames*channels)
	omega := 2 * math.Pi * freq / float64(sampleRate)
	for i := range frames {
		v := int16(math.Round(amplitude * math.Sin(omega*float64(i))))
		for ch := range channels {
			out[i*channels+ch] = v
		}
	}
	return out
}

// Constant returns frames with every sample set to value.
func Constant(frames, channels int, value int16) []int16 {
	out := make([]int16, frames*channels)
	for i := range out {
		out[i] = value
	}
	return out
}

// Silence returns frames of digital silence.
func Silence(frames, channels int) []int16 {
	return make([]int16, frames*channels)
}

// Concat joins interleaved buffers.
func Concat(parts ...[]int16) []int16 {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]int16, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
