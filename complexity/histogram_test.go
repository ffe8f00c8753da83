package complexity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadHistogram(t *testing.T) {
	path := writeFixture(t, "hist.txt", "1\t1000\n2\t500\n4\t100\n")

	h, err := LoadHistogram(path)
	require.NoError(t, err)

	assert.Equal(t, Histogram{0, 1000, 500, 0, 100}, h)
	assert.Equal(t, 2400.0, h.Reads())
	assert.Equal(t, 1600.0, h.Distinct())
}

func TestLoadHistogramOutOfOrder(t *testing.T) {
	path := writeFixture(t, "hist.txt", "2\t5\n1\t3\n")

	_, err := LoadHistogram(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestLoadHistogramBadLine(t *testing.T) {
	path := writeFixture(t, "hist.txt", "1\t10\n7\n")

	_, err := LoadHistogram(path)
	assert.Error(t, err)
}

func TestLoadHistogramMissing(t *testing.T) {
	_, err := LoadHistogram(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestLoadCounts(t *testing.T) {
	path := writeFixture(t, "counts.txt", "3\n0\n1\n\n2\n1\n")

	h, err := LoadCounts(path)
	require.NoError(t, err)

	assert.Equal(t, Histogram{0, 2, 1, 1}, h)
	assert.Equal(t, 7.0, h.Reads())
	assert.Equal(t, 4.0, h.Distinct())
}

func TestLoadCountsNegative(t *testing.T) {
	path := writeFixture(t, "counts.txt", "5\n-2\n")

	_, err := LoadCounts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestPositiveBins(t *testing.T) {
	assert.Equal(t, 3, Histogram{0, 1000, 500, 0, 100}.PositiveBins())
	assert.Equal(t, 5, Histogram{0, 8, 7, 6, 5, 4}.PositiveBins())
	assert.Equal(t, 0, Histogram(nil).PositiveBins())
}

func TestUsableTerms(t *testing.T) {
	h := Histogram{0, 5, 4, 3, 0, 7}
	assert.Equal(t, 2, h.UsableTerms(100))
	assert.Equal(t, 2, h.UsableTerms(3))

	deep := Histogram{0, 8, 7, 6, 5, 4, 3, 2, 1}
	assert.Equal(t, 8, deep.UsableTerms(100))
	assert.Equal(t, 4, deep.UsableTerms(5))
	assert.Equal(t, 0, Histogram(nil).UsableTerms(10))
}
