package tdhs

import (
	"math"
)

type stepKind int

const (
	stepCopy stepKind = iota
	stepExpand
	stepCompress
)

// instance is a single-stage stretcher for ratios in [0.5, 2].
type instance struct {
	channels int
	shortest int
	longest  int
	fast     bool

	// fifo holds interleaved input; frames [head, tail) are pending.
	fifo []int16
	head int
	tail int

	mono   []float64 // channel average of the analysis window
	coarse []float64 // decimated mono, fast mode only

	// drift is ratio*consumed - produced, kept within one longest period.
	drift float64
}

func newInstance(shortest, longest, channels int, fast bool) *instance {
	in := &instance{
		channels: channels,
		shortest: shortest,
		longest:  longest,
		fast:     fast,
		fifo:     make([]int16, fifoPeriods*longest*channels),
		mono:     make([]float64, analysisPeriods*longest),
	}
	if fast {
		in.coarse = make([]float64, analysisPeriods*longest/fastDecimation)
	}
	return in
}

// capacity bounds the frames produced by one process call fed frames frames.
// Consumption covers the call's input plus the backlog carried in, and drift
// can swing by at most one longest period either way.
func (in *instance) capacity(frames int, ratio float64) int {
	backlog := analysisPeriods * in.longest
	return int(math.Ceil(ratio*float64(frames+backlog))) + backlog
}

func (in *instance) pending() int {
	return in.tail - in.head
}

// process appends samples to the FIFO and runs every step the buffered input allows.
func (in *instance) process(samples []int16, em *emitter, ratio float64) {
	for len(samples) > 0 {
		n := in.push(samples)
		samples = samples[n:]
		for in.pending() >= analysisPeriods*in.longest {
			in.step(em, ratio)
		}
	}
}

// push copies as many whole frames as fit and returns the samples taken.
func (in *instance) push(samples []int16) int {
	ch := in.channels
	size := len(in.fifo) / ch
	if in.tail == size || in.tail+len(samples)/ch > size {
		copy(in.fifo, in.fifo[in.head*ch:in.tail*ch])
		in.tail -= in.head
		in.head = 0
	}
	frames := min(size-in.tail, len(samples)/ch)
	copy(in.fifo[in.tail*ch:], samples[:frames*ch])
	in.tail += frames
	return frames * ch
}

func (in *instance) frames(offset, count int) []int16 {
	ch := in.channels
	start := (in.head + offset) * ch
	return in.fifo[start : start+count*ch]
}

func (in *instance) step(em *emitter, ratio float64) {
	if ratio == 1 {
		em.copyFrames(in.frames(0, in.longest))
		in.head += in.longest
		return
	}

	p := in.findPeriod()
	fp := float64(p)

	kind := stepCopy
	next := in.drift + (ratio-1)*fp
	if ratio > 1 {
		if d := in.drift + (ratio-2)*fp; math.Abs(d) < math.Abs(next) {
			kind, next = stepExpand, d
		}
	} else {
		if d := in.drift + (2*ratio-1)*fp; math.Abs(d) < math.Abs(next) {
			kind, next = stepCompress, d
		}
	}
	in.drift = next

	a := in.frames(0, p)
	switch kind {
	case stepCopy:
		em.copyFrames(a)
		in.head += p
	case stepExpand:
		b := in.frames(p, p)
		em.copyFrames(a)
		em.crossfade(b, a)
		in.head += p
	case stepCompress:
		b := in.frames(p, p)
		em.crossfade(a, b)
		in.head += 2 * p
	}
}

// drain copies up to limit pending frames verbatim.
func (in *instance) drain(em *emitter, limit int) {
	n := min(in.pending(), limit)
	if n <= 0 {
		return
	}
	em.copyFrames(in.frames(0, n))
	in.head += n
}

func (in *instance) release() {
	in.fifo = nil
	in.mono = nil
	in.coarse = nil
	in.head, in.tail = 0, 0
}

// emitter writes interleaved frames into a caller buffer. Frames past the
// end of the buffer are counted and dropped.
type emitter struct {
	out      []int16
	channels int
	frames   int
}

// written returns how many of the counted frames actually landed in out.
func (e *emitter) written() int {
	return min(e.frames, len(e.out)/e.channels)
}

func (e *emitter) copyFrames(src []int16) {
	off := e.frames * e.channels
	if off < len(e.out) {
		copy(e.out[off:], src)
	}
	e.frames += len(src) / e.channels
}

// crossfade emits one period fading linearly from "from" into "to".
func (e *emitter) crossfade(from, to []int16) {
	ch := e.channels
	p := len(from) / ch
	for i := 0; i < p; i++ {
		off := e.frames * ch
		if off+ch <= len(e.out) {
			w := float64(i) / float64(p)
			for c := 0; c < ch; c++ {
				k := i*ch + c
				v := float64(from[k])*(1-w) + float64(to[k])*w
				e.out[off+c] = int16(math.Round(v))
			}
		}
		e.frames++
	}
}
