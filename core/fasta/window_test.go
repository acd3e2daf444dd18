package fasta

import (
	"strings"
	"testing"

	"knotscan-core/seq"
)

func TestWindowsTiling(t *testing.T) {
	rec := seq.Record{ID: "chr", Seq: []byte("AAAATTTTGGGGCC")} // 14 nt

	ws := Windows(rec, 4, 4)
	wantIDs := []string{"chr:0-4", "chr:4-8", "chr:8-12", "chr:12-14"}
	if len(ws) != len(wantIDs) {
		t.Fatalf("got %d windows, want %d", len(ws), len(wantIDs))
	}
	for i, w := range ws {
		if w.ID != wantIDs[i] {
			t.Errorf("window %d id = %q, want %q", i, w.ID, wantIDs[i])
		}
	}
	if string(ws[3].Seq) != "CC" {
		t.Errorf("final window seq = %q, want CC", ws[3].Seq)
	}
}

func TestWindowsOverlap(t *testing.T) {
	rec := seq.Record{ID: "s", Seq: []byte("ACGTACGTAC")} // 10 nt
	ws := Windows(rec, 6, 3)
	wantIDs := []string{"s:0-6", "s:3-9", "s:6-10"}
	if len(ws) != 3 {
		t.Fatalf("got %d windows, want 3", len(ws))
	}
	for i, w := range ws {
		if w.ID != wantIDs[i] {
			t.Errorf("window %d id = %q, want %q", i, w.ID, wantIDs[i])
		}
	}
	if string(ws[1].Seq) != "TACGTA" {
		t.Errorf("middle window seq = %q", ws[1].Seq)
	}
}

func TestWindowsDisabledAndShortInput(t *testing.T) {
	rec := seq.Record{ID: "s", Seq: []byte("ACGT")}

	ws := Windows(rec, 0, 0)
	if len(ws) != 1 || ws[0].ID != "s" {
		t.Fatalf("size<=0 should pass the record through, got %+v", ws)
	}

	ws = Windows(rec, 10, 5)
	if len(ws) != 1 || ws[0].ID != "s:0-4" {
		t.Fatalf("short input should yield one clipped window, got %+v", ws)
	}
}

func TestWindowsCopyNotAlias(t *testing.T) {
	rec := seq.Record{ID: "s", Seq: []byte("ACGTACGT")}
	ws := Windows(rec, 4, 4)
	rec.Seq[0] = 'T'
	if strings.HasPrefix(string(ws[0].Seq), "T") {
		t.Error("window seq aliases the parent record")
	}
}
