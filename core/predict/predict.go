// Package predict composes the per-sequence analysis stages: composition
// metrics, topology scoring, and risk classification.
package predict

import (
	"context"

	"knotscan-core/metrics"
	"knotscan-core/risk"
	"knotscan-core/seq"
	"knotscan-core/topology"
)

// Config holds the configuration of every analysis stage.
type Config struct {
	Metrics  metrics.Config
	Topology topology.Config
	Risk     risk.Config
}

// DefaultConfig returns the documented defaults for all stages.
func DefaultConfig() Config {
	return Config{Risk: risk.DefaultConfig()}
}

// Window marks the half-open interval of the source sequence a windowed
// record was cut from.
type Window struct {
	Start int
	End   int
}

// Result is the verdict for one record. When the record fails validation,
// Err is set and the analysis fields are zero. Source and Window are filled
// by the caller that knows where the record came from.
type Result struct {
	ID       string
	Source   string
	Window   *Window
	Length   int
	Metrics  metrics.Set
	Topology topology.Score
	Risk     risk.Assessment
	Err      error
}

// Predictor analyzes sequences against a fixed configuration.
type Predictor struct {
	cfg        Config
	classifier *risk.Classifier
}

// New validates the configuration eagerly, so a bad threshold surface fails
// before the first sequence is read rather than after.
func New(cfg Config) (*Predictor, error) {
	cls, err := risk.NewClassifier(cfg.Risk)
	if err != nil {
		return nil, err
	}
	return &Predictor{cfg: cfg, classifier: cls}, nil
}

// Config returns the predictor's configuration.
func (p *Predictor) Config() Config { return p.cfg }

// Analyze runs all stages on one record. A validation failure lands in
// Result.Err; it never panics and never aborts a batch.
func (p *Predictor) Analyze(rec seq.Record) Result {
	res := Result{ID: rec.ID, Length: len(rec.Seq)}
	m, err := metrics.Compute(rec, p.cfg.Metrics)
	if err != nil {
		res.Err = err
		return res
	}
	topo, err := topology.Analyze(rec, p.cfg.Topology)
	if err != nil {
		res.Err = err
		return res
	}
	res.Metrics = m
	res.Topology = topo
	res.Risk = p.classifier.Classify(m, topo)
	return res
}

// Stream analyzes records from recs one at a time, in input order, and
// yields exactly one Result per record. The returned channel closes when the
// input closes or ctx is canceled.
func (p *Predictor) Stream(ctx context.Context, recs <-chan seq.Record) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for rec := range recs {
			select {
			case <-ctx.Done():
				return
			default:
			}
			select {
			case out <- p.Analyze(rec):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
