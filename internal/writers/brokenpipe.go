package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken or closed pipe, which
// happens routinely when a downstream consumer (like `head`) closes early.
// Writers treat it as normal termination rather than failure.
func IsBrokenPipe(err error) bool {
	return err != nil &&
		(errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed))
}
