// Package report aggregates per-sequence verdicts into a whole-run summary,
// rendered both as structured log events and as the stable wire schema.
package report

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"knotscan-core/predict"
	"knotscan-core/risk"

	"knotscan/pkg/api"
)

// topCount caps the ranked excerpt in the run-end log.
const topCount = 5

// Failure records one sequence that could not be analyzed.
type Failure struct {
	ID     string
	Reason string
}

// Ranked is one entry of the by-score ordering.
type Ranked struct {
	ID    string
	Score float64
	Level risk.Level
}

// Report is the aggregate view of one run. RunID and the timestamps are
// assigned by the caller.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Total    int
	Analyzed int
	Failed   int
	Skipped  int

	Distribution   map[risk.Level]int
	Elevated       map[string]int
	MeanScore      float64
	StdDevScore    float64
	MeanGC         float64
	MeanComplexity float64

	Failures []Failure
	Top      []Ranked
}

// Build aggregates results in their arrival order. skipped counts records
// dropped before analysis (below the length floor).
func Build(results []predict.Result, skipped int) Report {
	r := Report{
		Skipped:      skipped,
		Distribution: make(map[risk.Level]int, len(risk.Levels())),
		Elevated:     make(map[string]int),
	}
	for _, lv := range risk.Levels() {
		r.Distribution[lv] = 0
	}

	var scores, gcs, complexities []float64
	for _, res := range results {
		r.Total++
		if res.Err != nil {
			r.Failed++
			r.Failures = append(r.Failures, Failure{ID: res.ID, Reason: res.Err.Error()})
			continue
		}
		r.Analyzed++
		r.Distribution[res.Risk.Level]++
		for _, sig := range res.Risk.ElevatedSignals() {
			r.Elevated[sig]++
		}
		scores = append(scores, res.Risk.Score)
		gcs = append(gcs, res.Metrics.GC)
		complexities = append(complexities, res.Topology.Complexity)
		r.Top = append(r.Top, Ranked{ID: res.ID, Score: res.Risk.Score, Level: res.Risk.Level})
	}

	sort.Slice(r.Top, func(i, j int) bool {
		if r.Top[i].Score != r.Top[j].Score {
			return r.Top[i].Score > r.Top[j].Score
		}
		return r.Top[i].ID < r.Top[j].ID
	})
	if len(r.Top) > topCount {
		r.Top = r.Top[:topCount]
	}

	r.MeanScore = meanOrZero(scores)
	r.StdDevScore = stddevOrZero(scores)
	r.MeanGC = meanOrZero(gcs)
	r.MeanComplexity = meanOrZero(complexities)
	return r
}

// Summary converts the report to the stable wire schema.
func (r Report) Summary() api.SummaryV1 {
	s := api.SummaryV1{
		RunID:          r.RunID,
		Total:          r.Total,
		Analyzed:       r.Analyzed,
		Failed:         r.Failed,
		Skipped:        r.Skipped,
		Distribution:   make(map[string]int, len(r.Distribution)),
		MeanScore:      r.MeanScore,
		StdDevScore:    r.StdDevScore,
		MeanGC:         r.MeanGC,
		MeanComplexity: r.MeanComplexity,
	}
	if !r.StartedAt.IsZero() {
		s.StartedAt = r.StartedAt.Format(time.RFC3339)
	}
	if !r.FinishedAt.IsZero() {
		s.FinishedAt = r.FinishedAt.Format(time.RFC3339)
	}
	for lv, n := range r.Distribution {
		s.Distribution[lv.String()] = n
	}
	if len(r.Elevated) > 0 {
		s.Elevated = make(map[string]int, len(r.Elevated))
		for sig, n := range r.Elevated {
			s.Elevated[sig] = n
		}
	}
	for _, f := range r.Failures {
		s.Failures = append(s.Failures, api.FailureV1{SequenceID: f.ID, Reason: f.Reason})
	}
	return s
}

// Log emits the run-end summary. Per-record failures are logged as they
// happen during the run, so only counts appear here.
func (r Report) Log(log zerolog.Logger) {
	ev := log.Info().
		Int("total", r.Total).
		Int("analyzed", r.Analyzed).
		Int("failed", r.Failed).
		Int("skipped", r.Skipped).
		Float64("mean_score", r.MeanScore).
		Float64("stddev_score", r.StdDevScore)
	for _, lv := range risk.Levels() {
		ev = ev.Int(lv.String(), r.Distribution[lv])
	}
	if !r.StartedAt.IsZero() && !r.FinishedAt.IsZero() {
		ev = ev.Dur("elapsed", r.FinishedAt.Sub(r.StartedAt))
	}
	ev.Msg("run complete")

	for _, t := range r.Top {
		log.Debug().
			Str("sequence_id", t.ID).
			Float64("score", t.Score).
			Stringer("level", t.Level).
			Msg("top risk")
	}
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func stddevOrZero(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
