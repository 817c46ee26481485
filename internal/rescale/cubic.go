// Package rescale converts interleaved 16-bit PCM between sample rates with
// 4-point cubic Hermite interpolation. Apart from the last four input frames
// a converter keeps no filter state.
package rescale

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRates indicates a converter was requested with unusable parameters.
var ErrInvalidRates = errors.New("invalid rescale parameters")

// Converter is a streaming rate converter. It is not safe for concurrent use.
type Converter struct {
	channels int
	inRate   int
	outRate  int

	// step is input frames advanced per output frame.
	step float64

	history [][cubicPoints]float64 // per channel, oldest first
	last    []int16                // most recent input frame
	seen    uint64                 // input frames pushed
	emitted uint64                 // output frames produced
	flushed bool

	out []int16
}

// New returns a converter from inRate to outRate.
func New(inRate, outRate, channels int) (*Converter, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: rates %d -> %d", ErrInvalidRates, inRate, outRate)
	}
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidRates, channels)
	}
	return &Converter{
		channels: channels,
		inRate:   inRate,
		outRate:  outRate,
		step:     float64(inRate) / float64(outRate),
		history:  make([][cubicPoints]float64, channels),
		last:     make([]int16, channels),
	}, nil
}

// Ratio returns the output/input rate ratio.
func (c *Converter) Ratio() float64 {
	return float64(c.outRate) / float64(c.inRate)
}

// Process converts interleaved input frames. The returned slice is reused by
// the next call.
func (c *Converter) Process(in []int16) []int16 {
	c.out = c.out[:0]
	if c.flushed {
		return c.out
	}
	frames := len(in) / c.channels
	for i := 0; i < frames; i++ {
		c.push(in[i*c.channels : (i+1)*c.channels])
	}
	return c.out
}

// Flush emits the output frames that depend on input past the last frame,
// by repeating the last frame. Further calls return nothing.
func (c *Converter) Flush() []int16 {
	c.out = c.out[:0]
	if c.flushed || c.seen == 0 {
		c.flushed = true
		return c.out
	}
	for i := 0; i < tailFrames; i++ {
		c.push(c.last)
	}
	c.flushed = true
	return c.out
}

// Frames returns the number of input and output frames so far.
func (c *Converter) Frames() (in, out uint64) {
	return c.seen, c.emitted
}

// push shifts one frame into the window. With frames i-3..i buffered, every
// output time in [i-2, i-1) can be interpolated.
func (c *Converter) push(frame []int16) {
	for ch, s := range frame {
		h := &c.history[ch]
		v := float64(s)
		if c.seen == 0 {
			*h = [cubicPoints]float64{v, v, v, v}
		} else {
			h[0], h[1], h[2], h[3] = h[1], h[2], h[3], v
		}
	}
	copy(c.last, frame)
	c.seen++

	// Output times are measured in input frames; frame 0 is at time 0.
	base := float64(c.seen) - 3
	limit := base + 1
	for {
		t := float64(c.emitted) * c.step
		if t >= limit {
			break
		}
		x := t - base
		for ch := range c.history {
			c.out = append(c.out, toInt16(interpolate(&c.history[ch], x)))
		}
		c.emitted++
	}
}

// interpolate evaluates the Catmull-Rom spline between h[1] and h[2] at x in [0, 1).
func interpolate(h *[cubicPoints]float64, x float64) float64 {
	y0, y1, y2, y3 := h[0], h[1], h[2], h[3]

	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	return ((coefA*x+coefB)*x+coefC)*x + coefD
}

func toInt16(v float64) int16 {
	v = math.Round(v)
	switch {
	case v > maxInt16:
		return maxInt16
	case v < minInt16:
		return minInt16
	default:
		return int16(v)
	}
}
