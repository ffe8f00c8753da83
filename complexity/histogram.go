// Package complexity turns duplicate-count observations into library
// complexity predictions: interpolated yield below the observed depth,
// extrapolated yield above it, and bootstrapped confidence bounds. The
// approximation itself lives in the parent package; this package owns
// histogram handling, resampling, and the table formats.
package complexity

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Histogram counts distinct items by observed frequency: h[i] is the
// number of items seen exactly i times. Index zero stays empty.
type Histogram []float64

// Reads returns the total number of observations the histogram
// represents.
func (h Histogram) Reads() float64 {
	total := 0.0
	for i, v := range h {
		total += float64(i) * v
	}
	return total
}

// Distinct returns the number of distinct items observed.
func (h Histogram) Distinct() float64 {
	total := 0.0
	for _, v := range h {
		total += v
	}
	return total
}

// PositiveBins returns the number of frequency bins holding at least
// one item.
func (h Histogram) PositiveBins() int {
	n := 0
	for _, v := range h {
		if v > 0 {
			n++
		}
	}
	return n
}

// UsableTerms caps maxTerms by the run of positive frequencies starting
// at one and rounds down to even. Frequencies past the first gap cannot
// feed the power series, and odd term counts cannot anchor the
// even-degree search.
func (h Histogram) UsableTerms(maxTerms int) int {
	run := 1
	for run < len(h) && h[run] > 0 {
		run++
	}
	if maxTerms > run-1 {
		maxTerms = run - 1
	}
	if maxTerms < 0 {
		return 0
	}
	return maxTerms - maxTerms%2
}

// LoadHistogram reads a histogram from a two-column text file of
// frequency and count, ordered by frequency. Gaps are filled with zeros.
func LoadHistogram(path string) (Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open histogram: %w", err)
	}
	defer f.Close()

	var h Histogram
	prev := 0
	line := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return nil, fmt.Errorf("histogram line %d: expected frequency and count, got %q", line, sc.Text())
		}
		freq, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("histogram line %d: %w", line, err)
		}
		count, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("histogram line %d: %w", line, err)
		}
		if freq < prev {
			return nil, fmt.Errorf("histogram line %d: frequencies out of order", line)
		}
		for len(h) <= freq {
			h = append(h, 0)
		}
		h[freq] = count
		prev = freq
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read histogram: %w", err)
	}
	return h, nil
}

// LoadCounts reads one duplicate count per line and builds the histogram
// of those counts. Zero counts are skipped, negative counts rejected.
func LoadCounts(path string) (Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open counts: %w", err)
	}
	defer f.Close()

	var h Histogram
	line := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("counts line %d: %w", line, err)
		}
		if val < 0 {
			return nil, fmt.Errorf("counts line %d: negative count %v", line, val)
		}
		if val == 0 {
			continue
		}
		c := int(val)
		for len(h) <= c {
			h = append(h, 0)
		}
		h[c]++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read counts: %w", err)
	}
	return h, nil
}
