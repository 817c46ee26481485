package tdhs

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// findPeriod returns the lag in [shortest, longest] at which the buffered
// signal best matches itself, using the average magnitude difference.
func (in *instance) findPeriod() int {
	window := in.frames(0, analysisPeriods*in.longest)
	downmix(in.mono, window, in.channels)

	if !in.fast {
		return bestLag(in.mono, in.shortest, in.longest)
	}

	for i := range in.coarse {
		j := i * fastDecimation
		in.coarse[i] = (in.mono[j] + in.mono[j+1]) / 2
	}
	lo := max(1, in.shortest/fastDecimation)
	hi := in.longest / fastDecimation
	p := bestLag(in.coarse, lo, hi) * fastDecimation

	return bestLag(in.mono, max(in.shortest, p-refineSpan), min(in.longest, p+refineSpan))
}

// bestLag scores each lag by the mean absolute difference between x[:p] and
// x[p:2p]. Ties keep the shorter lag.
func bestLag(x []float64, lo, hi int) int {
	best := lo
	bestScore := math.Inf(1)
	for p := lo; p <= hi; p++ {
		score := floats.Distance(x[:p], x[p:2*p], 1) / float64(p)
		if score < bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

func downmix(dst []float64, src []int16, channels int) {
	if channels == 1 {
		for i, v := range src {
			dst[i] = float64(v)
		}
		return
	}
	scale := 1 / float64(channels)
	for i := range dst {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(src[i*channels+c])
		}
		dst[i] = sum * scale
	}
}
