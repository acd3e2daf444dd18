// core/fasta/window.go
package fasta

import (
	"fmt"

	"knotscan-core/seq"
)

// Windows splits a record into sliding windows of the given size and stride.
// Window IDs carry half-open coordinates as "<id>:<start>-<end>". size <= 0
// returns the record unchanged as the only element; stride <= 0 defaults to
// size (non-overlapping tiling). The final window is clipped at the end of
// the sequence, so it may be shorter than size.
func Windows(rec seq.Record, size, stride int) []seq.Record {
	n := len(rec.Seq)
	if size <= 0 || n == 0 {
		return []seq.Record{rec}
	}
	if stride <= 0 {
		stride = size
	}
	var out []seq.Record
	for off := 0; ; off += stride {
		end := off + size
		if end > n {
			end = n
		}
		if off >= end {
			break
		}
		out = append(out, seq.Record{
			ID:  fmt.Sprintf("%s:%d-%d", rec.ID, off, end),
			Seq: append([]byte(nil), rec.Seq[off:end]...),
		})
		if end == n {
			break
		}
	}
	return out
}
