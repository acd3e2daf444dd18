// core/fasta/stream.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"knotscan-core/seq"
)

// StreamCtx parses FASTA from r and emits one seq.Record per entry, in file
// order. Sequence lines are concatenated with surrounding whitespace trimmed;
// no normalization or alphabet validation happens here.
//
// It is cancelable: it returns promptly when ctx is Done, even mid-record.
func StreamCtx(ctx context.Context, r io.Reader, emit func(seq.Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id   string
		body = make([]byte, 0, 1<<20)
	)

	flush := func() error {
		if id == "" && len(body) == 0 {
			return nil
		}
		return emit(seq.Record{ID: id, Seq: append([]byte(nil), body...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if id != "" {
				if err := flush(); err != nil {
					return err
				}
				body = body[:0]
			}
			id = parseHeaderID(line[1:])
			continue
		}
		body = append(body, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	if id != "" || len(body) > 0 {
		return flush()
	}
	return nil
}

// StreamPathCtx opens path (plain, gzip, or "-" for stdin) and streams its
// records through StreamCtx.
func StreamPathCtx(ctx context.Context, path string, emit func(seq.Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return StreamCtx(ctx, rc, emit)
}

// parseHeaderID returns the first whitespace-delimited token of a header line.
func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
