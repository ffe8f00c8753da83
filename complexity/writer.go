package complexity

import (
	"fmt"
	"io"
)

// WriteYieldTable writes the bootstrap median curve with its confidence
// bounds. Rows sit at (i+1)*step reads; a zero row leads.
func WriteYieldTable(w io.Writer, step, confidence float64, median, lower, upper []float64) error {
	if _, err := fmt.Fprintf(w, "TOTAL_READS\tEXPECTED_DISTINCT\tLOWER_%gCI\tUPPER_%gCI\n",
		confidence, confidence); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "0\t0\t0\t0"); err != nil {
		return err
	}
	for i := range median {
		if _, err := fmt.Fprintf(w, "%.1f\t%.1f\t%.1f\t%.1f\n",
			float64(i+1)*step, median[i], lower[i], upper[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteQuickTable writes a single-estimate yield curve without bounds.
func WriteQuickTable(w io.Writer, step float64, curve []float64) error {
	if _, err := fmt.Fprintln(w, "TOTAL_READS\tEXPECTED_DISTINCT"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "0\t0"); err != nil {
		return err
	}
	for i, v := range curve {
		if _, err := fmt.Fprintf(w, "%.1f\t%.1f\n", float64(i+1)*step, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteObservedTable writes the subsampled complexity curve of the
// sample itself.
func WriteObservedTable(w io.Writer, step float64, curve []float64) error {
	if _, err := fmt.Fprintln(w, "total_reads\tdistinct_reads"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "0\t0"); err != nil {
		return err
	}
	for i, v := range curve {
		if _, err := fmt.Fprintf(w, "%.0f\t%g\n", float64(i+1)*step, v); err != nil {
			return err
		}
	}
	return nil
}
