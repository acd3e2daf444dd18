package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"knotscan-core/risk"
	"knotscan/pkg/api"
)

func TestJSONLWriterOneLinePerResult(t *testing.T) {
	var buf bytes.Buffer
	in, done, err := Start("jsonl", &buf, Options{BufSize: 4})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	in <- mkResult("a", risk.Low, 0.1)
	in <- mkResult("b", risk.Critical, 0.9)
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2: %q", len(lines), buf.String())
	}
	for i, want := range []string{"a", "b"} {
		var r api.ResultV1
		if err := json.Unmarshal([]byte(lines[i]), &r); err != nil {
			t.Fatalf("line %d not valid JSON: %v", i, err)
		}
		if r.SequenceID != want {
			t.Fatalf("line %d id = %q, want %q", i, r.SequenceID, want)
		}
	}
}

func TestJSONLWriterRankOrder(t *testing.T) {
	var buf bytes.Buffer
	in, done, err := Start("jsonl", &buf, Options{Rank: true, BufSize: 4})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	in <- mkResult("low", risk.Low, 0.1)
	in <- mkResult("high", risk.High, 0.7)
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var first api.ResultV1
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 0: %v", err)
	}
	if first.SequenceID != "high" {
		t.Fatalf("first ranked id = %q, want high", first.SequenceID)
	}
}
