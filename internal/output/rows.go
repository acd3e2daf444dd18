// internal/output/rows.go
package output

import (
	"fmt"
	"strings"

	"knotscan-core/predict"
)

// FlagsCSV renders elevated signal names as a comma list, or "-" when none
// are elevated, so the flags column is never empty.
func FlagsCSV(flags []string) string {
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

// FormatRow returns the 13 TSV columns for one result (no trailing newline).
// Failed records keep the column count: dashes for the metric columns, ERROR
// in the level column, and the reason in the flags column.
func FormatRow(r predict.Result) string {
	if r.Err != nil {
		return fmt.Sprintf("%s\t%s\t%d\t-\t-\t-\t-\t-\t-\t-\t-\tERROR\t%s",
			r.ID, sourceOrDash(r.Source), r.Length, r.Err)
	}
	return fmt.Sprintf("%s\t%s\t%d\t%.4f\t%.2f\t%.4f\t%.4f\t%.4f\t%d\t%.4f\t%.4f\t%s\t%s",
		r.ID, sourceOrDash(r.Source), r.Length,
		r.Metrics.GC, r.Metrics.TmC, r.Metrics.Homopolymer, r.Metrics.Entropy, r.Metrics.CodonBias,
		r.Topology.Crossings, r.Topology.Complexity,
		r.Risk.Score, r.Risk.Level, FlagsCSV(r.Risk.ElevatedSignals()))
}

func sourceOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
