// core/fasta/reader.go
package fasta

import (
	"context"

	"knotscan-core/seq"
)

// Stream is the channel wrapper around StreamPathCtx. Open errors on real
// paths are reported immediately; scan errors after that terminate the
// channel silently (callers needing them should use StreamPathCtx directly).
func Stream(ctx context.Context, path string) (<-chan seq.Record, error) {
	if path != "-" {
		rc, err := openReader(path)
		if err != nil {
			return nil, err
		}
		_ = rc.Close()
	}

	out := make(chan seq.Record, 8)
	go func() {
		defer close(out)
		_ = StreamPathCtx(ctx, path, func(r seq.Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, nil
}
