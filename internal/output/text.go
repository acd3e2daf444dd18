// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"knotscan-core/predict"
)

// StreamText prints one TSV row per result as results arrive.
func StreamText(w io.Writer, in <-chan predict.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRow(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints a buffered slice of results, used when --rank needs the
// whole run before anything can be emitted.
func WriteText(w io.Writer, list []predict.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(w, FormatRow(r)); err != nil {
			return err
		}
	}
	return nil
}
