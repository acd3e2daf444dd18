// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"knotscan-core/predict"

	"knotscan/internal/charts"
	"knotscan/internal/cli"
	"knotscan/internal/config"
	"knotscan/internal/logging"
	"knotscan/internal/pipeline"
	"knotscan/internal/report"
	"knotscan/internal/store"
	"knotscan/internal/version"
	"knotscan/internal/writers"
)

// RunContext executes one scan invocation and returns the process exit code:
// 0 success (including reported per-record failures), 1 nothing analyzed,
// 2 usage or configuration error, 3 I/O failure, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("knotscan")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "knotscan version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	settings, err := config.Resolve(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := logging.New(stderr, logging.Config{Level: settings.LogLevel, Quiet: settings.Quiet})

	pred, err := predict.New(settings.Predict)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	thr := settings.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	log.Info().
		Strs("inputs", opts.SeqFiles).
		Int("threads", thr).
		Int("window", settings.Window).
		Int("stride", settings.Stride).
		Int("min_length", settings.MinLength).
		Str("output", settings.Output).
		Msg("run started")

	inCh, writeErr, err := writers.Start(settings.Output, outw, writers.Options{
		Header:  settings.Header,
		Rank:    settings.Rank,
		BufSize: thr * 4,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	started := time.Now()
	var buffered []predict.Result
	stats, perr := pipeline.ForEachResult(ctx, pipeline.Config{
		Threads:    thr,
		WindowSize: settings.Window,
		Stride:     settings.Stride,
		MinLength:  settings.MinLength,
	}, opts.SeqFiles, pred, func(res predict.Result) error {
		buffered = append(buffered, res)
		if res.Err != nil {
			log.Warn().Str("sequence_id", res.ID).Str("reason", res.Err.Error()).Msg("sequence failed")
		}
		select {
		case inCh <- res:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	finished := time.Now()

	close(inCh)

	pipeBroken := false
	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		pipeBroken = true
	} else if werr != nil {
		log.Error().Err(werr).Msg("write failed")
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		pipeBroken = true
	} else if e != nil {
		log.Error().Err(e).Msg("write failed")
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		log.Error().Err(perr).Msg("run failed")
		return 3
	}

	rep := report.Build(buffered, stats.Skipped)
	rep.RunID = uuid.New().String()
	rep.StartedAt = started
	rep.FinishedAt = finished
	rep.Log(log)

	if settings.OutDir != "" {
		paths, aerr := writeArtifacts(settings.OutDir, buffered, rep)
		for _, p := range paths {
			log.Debug().Str("path", p).Msg("artifact written")
		}
		if aerr != nil {
			log.Error().Err(aerr).Msg("artifact write failed")
			return 3
		}
	}

	if settings.Charts {
		renderer := charts.New(filepath.Join(settings.OutDir, "charts"), settings.ChartDPI, pred.Config().Risk)
		paths, cerr := renderer.RenderAll(buffered)
		for _, p := range paths {
			log.Debug().Str("path", p).Msg("chart written")
		}
		if cerr != nil {
			log.Error().Err(cerr).Msg("chart render failed")
			return 3
		}
	}

	if settings.DBPath != "" {
		st, serr := store.Open(settings.DBPath)
		if serr != nil {
			log.Error().Err(serr).Msg("store open failed")
			return 3
		}
		runID, serr := st.SaveRun(rep, settings, buffered)
		if cerr := st.Close(); serr == nil {
			serr = cerr
		}
		if serr != nil {
			log.Error().Err(serr).Msg("store write failed")
			return 3
		}
		log.Info().Str("run_id", runID).Str("db", settings.DBPath).Msg("run persisted")
	}

	if pipeBroken {
		return 0
	}
	if rep.Analyzed == 0 {
		return 1
	}
	return 0
}

// Run executes with the background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
