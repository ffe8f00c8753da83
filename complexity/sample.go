package complexity

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// expandReads flattens a histogram into the ordered multiset of reads
// labeled by item: an item observed i times contributes i copies of its
// id. Ids are assigned contiguously, so any order-preserving sample's
// distinct count is a count of id changes.
func expandReads(h Histogram) []int {
	reads := make([]int, 0, int(h.Reads()))
	id := 0
	for freq := 1; freq < len(h); freq++ {
		for n := 0; n < int(h[freq]); n++ {
			for k := 0; k < freq; k++ {
				reads = append(reads, id)
			}
			id++
		}
	}
	return reads
}

// sampleDistinct draws sampleSize reads without replacement, preserving
// order, and counts the distinct items hit. Each read is kept with
// probability needed/remaining, which yields a uniform subset in one
// pass. Oversized requests return the full distinct count.
func sampleDistinct(rng *rand.Rand, reads []int, sampleSize int) float64 {
	remaining := len(reads)
	need := sampleSize
	distinct := 0.0
	prev := -1
	for _, id := range reads {
		if need == 0 {
			break
		}
		if float64(remaining)*rng.Float64() < float64(need) {
			if id != prev {
				distinct++
				prev = id
			}
			need--
		}
		remaining--
	}
	return distinct
}

// ResampleHistogram draws a multinomial resample over the histogram's
// occupied bins, keeping the total number of distinct items fixed. The
// multinomial is decomposed into sequential binomials, one bin at a
// time against the probability mass left.
func ResampleHistogram(rng *rand.Rand, h Histogram) Histogram {
	var freqs []int
	var weights []float64
	total := 0.0
	for i, v := range h {
		if v > 0 {
			freqs = append(freqs, i)
			weights = append(weights, v)
			total += v
		}
	}
	if len(freqs) == 0 {
		return Histogram{}
	}

	out := make(Histogram, freqs[len(freqs)-1]+1)
	remaining := int64(total)
	massLeft := total
	for k, w := range weights {
		if remaining <= 0 {
			break
		}
		var draw int64
		if k == len(weights)-1 || w >= massLeft {
			draw = remaining
		} else {
			bin := distuv.Binomial{N: float64(remaining), P: w / massLeft, Src: rng}
			draw = int64(bin.Rand())
		}
		out[freqs[k]] = float64(draw)
		remaining -= draw
		massLeft -= w
	}
	return out
}
