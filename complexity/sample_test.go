package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestExpandReads(t *testing.T) {
	// Two singletons and one doubleton: four reads over three items.
	h := Histogram{0, 2, 1}
	assert.Equal(t, []int{0, 1, 2, 2}, expandReads(h))
	assert.Empty(t, expandReads(Histogram{0}))
}

func TestSampleDistinctExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	reads := expandReads(Histogram{0, 2, 1})

	assert.Equal(t, 0.0, sampleDistinct(rng, reads, 0))
	assert.Equal(t, 3.0, sampleDistinct(rng, reads, len(reads)))
	// Oversized requests return everything.
	assert.Equal(t, 3.0, sampleDistinct(rng, reads, 10*len(reads)))
}

func TestSampleDistinctBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := Histogram{0, 50, 25, 10}
	reads := expandReads(h)

	for _, size := range []int{1, 10, 40, 100} {
		got := sampleDistinct(rng, reads, size)
		assert.GreaterOrEqual(t, got, 1.0, "size %d", size)
		assert.LessOrEqual(t, got, min(float64(size), h.Distinct()), "size %d", size)
	}
}

func TestResampleHistogramPreservesDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	h := Histogram{0, 100, 50, 25}

	for i := 0; i < 10; i++ {
		boot := ResampleHistogram(rng, h)
		require.LessOrEqual(t, len(boot), len(h))

		total := 0.0
		for freq, v := range boot {
			assert.GreaterOrEqual(t, v, 0.0)
			if freq == 0 {
				assert.Zero(t, v)
			}
			total += v
		}
		assert.Equal(t, h.Distinct(), total)
	}
}

func TestResampleHistogramEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, ResampleHistogram(rng, Histogram{0, 0}))
}
