// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"knotscan-core/predict"
	"knotscan/internal/common"
	"knotscan/internal/output"
)

func init() {
	Register(output.FormatJSONL, startJSONL)
}

// Reuse a 64 KiB buffered writer across JSONL runs to avoid per-run mallocs.
// The encoder itself is tiny and tied to an io.Writer, so it is created per
// goroutine.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// startJSONL streams each result as one v1 JSON line. With Rank set it
// buffers, sorts, then emits.
func startJSONL(w io.Writer, opt Options) (chan<- predict.Result, <-chan error) {
	in := make(chan predict.Result, bufSize(opt))
	errc := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		// Rebind to the actual output while keeping the pooled buffer.
		bw.Reset(w)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()
		enc := json.NewEncoder(bw)

		var err error
		if opt.Rank {
			var buf []predict.Result
			for r := range in {
				buf = append(buf, r)
			}
			common.RankResults(buf)
			for _, r := range buf {
				if err = enc.Encode(output.ToAPIResult(r)); err != nil {
					break
				}
			}
		} else {
			for r := range in {
				if err = enc.Encode(output.ToAPIResult(r)); err != nil {
					break
				}
			}
			drain(in)
		}
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errc <- err
	}()

	return in, errc
}
