// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"knotscan-core/fasta"
	"knotscan-core/predict"
	"knotscan-core/seq"
	"knotscan/internal/common"
)

// Config controls the analysis pipeline.
type Config struct {
	Threads    int // number of worker goroutines (>=1)
	WindowSize int // sliding window width; 0 analyzes whole records
	Stride     int // window step; <=0 means WindowSize
	MinLength  int // records shorter than this are skipped; 0 keeps all
}

// Stats counts what a run saw on its way through the pipeline.
type Stats struct {
	Records int // records read from input, before windowing
	Units   int // analysis units after windowing
	Skipped int // records dropped by MinLength
}

type job struct {
	idx    int
	rec    seq.Record
	source string
	win    *predict.Window
}

type numbered struct {
	idx int
	res predict.Result
}

// ForEachResult reads records from seqFiles, normalizes them, optionally
// cuts them into windows, analyzes each unit on a worker pool, and calls
// visit with exactly one result per unit in submission order, no matter
// which worker finishes first. A file that cannot be opened is reported once
// while the remaining files are still scanned. The first visit error stops
// further visits; the run keeps draining so workers never leak.
func ForEachResult(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	an Analyzer,
	visit func(predict.Result) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan job, cfg.Threads*2)
	results := make(chan numbered, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					res := an.Analyze(j.rec)
					res.Source = j.source
					res.Window = j.win
					select {
					case results <- numbered{idx: j.idx, res: res}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector + resequencer: results arrive in completion order and leave
	// in submission order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]predict.Result, cfg.Threads*2)
		next := 0
		for nr := range results {
			pending[nr.idx] = nr.res
			for {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				if err := visit(res); err != nil && cerr == nil {
					cerr = err
				}
			}
		}
	}()

	// Feed work
	var stats Stats
	var feedErr error
	idx := 0
feed:
	for _, path := range seqFiles {
		rch, err := fasta.Stream(ctx, path)
		if err != nil {
			// Keep scanning other files; the first error is returned.
			if feedErr == nil {
				feedErr = err
			}
			continue
		}
		for rec := range rch {
			rec.Seq = seq.Normalize(rec.Seq)
			stats.Records++
			if cfg.MinLength > 0 && len(rec.Seq) < cfg.MinLength {
				stats.Skipped++
				continue
			}
			for _, wrec := range fasta.Windows(rec, cfg.WindowSize, cfg.Stride) {
				j := job{idx: idx, rec: wrec, source: path}
				if cfg.WindowSize > 0 {
					if _, s, e, ok := common.SplitWindowSuffix(wrec.ID); ok {
						j.win = &predict.Window{Start: s, End: e}
					}
				}
				stats.Units++
				select {
				case <-ctx.Done():
					break feed
				case jobs <- j:
					idx++
				}
			}
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	if cerr != nil {
		return stats, cerr
	}
	return stats, feedErr
}
