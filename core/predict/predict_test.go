// core/predict/predict_test.go
package predict

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"knotscan-core/risk"
	"knotscan-core/seq"
)

func mustPredictor(t *testing.T) *Predictor {
	t.Helper()
	p, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

// A valid record gets every stage filled in.
func TestAnalyzeFullVerdict(t *testing.T) {
	p := mustPredictor(t)
	res := p.Analyze(seq.Record{ID: "polya", Seq: []byte("AAAAAAAAAA")})

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.ID != "polya" || res.Length != 10 {
		t.Errorf("identity = %q/%d, want polya/10", res.ID, res.Length)
	}
	if res.Metrics.Homopolymer != 0.9 {
		t.Errorf("homopolymer = %v, want 0.9", res.Metrics.Homopolymer)
	}
	if res.Topology.Crossings != 0 {
		t.Errorf("crossings = %d, want 0", res.Topology.Crossings)
	}
	if res.Risk.Level != risk.Critical {
		t.Errorf("level = %v, want critical", res.Risk.Level)
	}
}

// A bad configuration fails at construction, not on the first sequence.
func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Risk.Weights.GC = 0.5
	if _, err := New(cfg); err == nil {
		t.Fatal("invalid weights accepted")
	} else {
		var ice *risk.InvalidConfigError
		if !errors.As(err, &ice) {
			t.Fatalf("error type = %T, want *risk.InvalidConfigError", err)
		}
	}
}

// One malformed record is reported in its own result and leaves its
// neighbors untouched.
func TestAnalyzeIsolatesInvalidRecord(t *testing.T) {
	p := mustPredictor(t)
	good := seq.Record{ID: "ok", Seq: []byte("ATGCATGCATGC")}
	bad := seq.Record{ID: "bad", Seq: []byte("ATGNATGC")}

	alone := p.Analyze(good)

	recs := make(chan seq.Record, 3)
	recs <- good
	recs <- bad
	recs <- good
	close(recs)

	var got []Result
	for res := range p.Stream(context.Background(), recs) {
		got = append(got, res)
	}
	if len(got) != 3 {
		t.Fatalf("results = %d, want 3", len(got))
	}

	var ise *seq.InvalidSequenceError
	if got[1].Err == nil || !errors.As(got[1].Err, &ise) {
		t.Fatalf("bad record error = %v, want *seq.InvalidSequenceError", got[1].Err)
	}
	if got[1].ID != "bad" {
		t.Errorf("bad record id = %q", got[1].ID)
	}
	for _, i := range []int{0, 2} {
		if got[i].Err != nil {
			t.Fatalf("result %d: unexpected error %v", i, got[i].Err)
		}
		if !reflect.DeepEqual(got[i], alone) {
			t.Errorf("result %d differs from standalone analysis:\n%+v\n%+v", i, got[i], alone)
		}
	}
}

// Stream yields exactly one result per record, in input order.
func TestStreamPreservesOrder(t *testing.T) {
	p := mustPredictor(t)
	ids := []string{"a", "b", "c", "d", "e"}
	recs := make(chan seq.Record, len(ids))
	for _, id := range ids {
		recs <- seq.Record{ID: id, Seq: []byte("ACGTACGT")}
	}
	close(recs)

	var got []string
	for res := range p.Stream(context.Background(), recs) {
		got = append(got, res.ID)
	}
	if !reflect.DeepEqual(got, ids) {
		t.Errorf("order = %v, want %v", got, ids)
	}
}

// A canceled context stops the stream before any record is analyzed.
func TestStreamCancelBeforeRead(t *testing.T) {
	p := mustPredictor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recs := make(chan seq.Record, 2)
	recs <- seq.Record{ID: "a", Seq: []byte("ACGT")}
	recs <- seq.Record{ID: "b", Seq: []byte("ACGT")}
	close(recs)

	n := 0
	for range p.Stream(ctx, recs) {
		n++
	}
	if n != 0 {
		t.Errorf("results after cancel = %d, want 0", n)
	}
}
