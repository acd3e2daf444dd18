// Package writers turns analysis results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV rows, JSON/JSONL).
//   - The core packages stay domain-only; the pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
//
// Each writer runs in its own goroutine: results are fed through a channel
// and the terminal error is reported on a one-shot error channel after the
// input closes.
package writers
