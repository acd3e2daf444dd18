// internal/writers/result.go
package writers

import (
	"io"

	"knotscan-core/predict"
	"knotscan/internal/common"
	"knotscan/internal/output"
)

func init() {
	Register(output.FormatText, startText)
	Register(output.FormatJSON, startJSON)
}

const defaultBufSize = 64

func bufSize(opt Options) int {
	if opt.BufSize > 0 {
		return opt.BufSize
	}
	return defaultBufSize
}

// drain unblocks producers after a mid-stream write failure.
func drain(in <-chan predict.Result) {
	for range in {
	}
}

func startText(w io.Writer, opt Options) (chan<- predict.Result, <-chan error) {
	in := make(chan predict.Result, bufSize(opt))
	errc := make(chan error, 1)
	go func() {
		var err error
		if opt.Rank {
			var buf []predict.Result
			for r := range in {
				buf = append(buf, r)
			}
			common.RankResults(buf)
			err = output.WriteText(w, buf, opt.Header)
		} else {
			err = output.StreamText(w, in, opt.Header)
			drain(in)
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errc <- err
	}()
	return in, errc
}

// startJSON always buffers: the output is a single array, so nothing can be
// emitted until the input closes.
func startJSON(w io.Writer, opt Options) (chan<- predict.Result, <-chan error) {
	in := make(chan predict.Result, bufSize(opt))
	errc := make(chan error, 1)
	go func() {
		var buf []predict.Result
		for r := range in {
			buf = append(buf, r)
		}
		if opt.Rank {
			common.RankResults(buf)
		}
		err := output.WriteJSON(w, buf)
		if IsBrokenPipe(err) {
			err = nil
		}
		errc <- err
	}()
	return in, errc
}
