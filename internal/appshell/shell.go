// Package appshell owns the process edge: signal wiring, stdio, and the
// final exit code. Everything else lives behind app.RunContext so tests can
// drive the whole binary in-process.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs the application with SIGINT/SIGTERM bound to context
// cancellation and exits the process with the returned code.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// A run that raced the signal still reports the cancellation.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
