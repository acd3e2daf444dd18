// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"knotscan-core/predict"
)

// Options carry the presentation switches writers care about.
type Options struct {
	Header  bool // print the TSV header (text only)
	Rank    bool // buffer the whole run and emit in rank order
	BufSize int  // input channel capacity; <=0 means the default
}

// StartFunc launches a writer goroutine for one output format. The writer
// owns w until the input channel is closed and the error has been read.
type StartFunc func(w io.Writer, opt Options) (chan<- predict.Result, <-chan error)

// Writer registry (format → factory). Register in init() blocks from the
// writer files so formats and implementations stay next to each other.
var registry = map[string]StartFunc{}

// Register installs a writer factory for a format name (last wins).
func Register(format string, fn StartFunc) { registry[format] = fn }

// Start launches the writer for format.
func Start(format string, w io.Writer, opt Options) (chan<- predict.Result, <-chan error, error) {
	fn, ok := registry[format]
	if !ok {
		return nil, nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	in, errc := fn(w, opt)
	return in, errc, nil
}

// Formats lists the registered format names, sorted, for flag validation and
// usage text.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
