package metrics

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"knotscan-core/seq"
)

func compute(t *testing.T, s string) Set {
	t.Helper()
	set, err := Compute(seq.Record{ID: "t", Seq: []byte(s)}, Config{})
	if err != nil {
		t.Fatalf("Compute(%q): %v", s, err)
	}
	return set
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestHomopolymerRun(t *testing.T) {
	set := compute(t, "AAAAAAAAAA") // 10xA

	if set.GC != 0 {
		t.Errorf("GC = %v, want 0", set.GC)
	}
	if set.Entropy != 0 {
		t.Errorf("entropy = %v, want 0", set.Entropy)
	}
	if !almost(set.Homopolymer, 0.9) {
		t.Errorf("homopolymer = %v, want 0.9", set.Homopolymer)
	}
	// Wallace rule: 2*(A+T) + 4*(G+C).
	if set.TmC != 20 {
		t.Errorf("Tm = %v, want 20", set.TmC)
	}
	if set.CodonBias != 1.0 {
		t.Errorf("codon bias = %v, want 1.0", set.CodonBias)
	}
}

func TestBalancedRepeat(t *testing.T) {
	set := compute(t, "ATGCATGCATGC")

	if set.GC != 0.5 {
		t.Errorf("GC = %v, want 0.5", set.GC)
	}
	if set.Entropy != 2.0 {
		t.Errorf("entropy = %v, want exactly 2.0", set.Entropy)
	}
	if set.Homopolymer != 0 {
		t.Errorf("homopolymer = %v, want 0", set.Homopolymer)
	}
	if set.TmC != 36 {
		t.Errorf("Tm = %v, want 36 (Wallace, length 12)", set.TmC)
	}
}

func TestMeltingTempCrossover(t *testing.T) {
	// Length 13 stays on the Wallace rule.
	set := compute(t, strings.Repeat("G", 13))
	if set.TmC != 52 {
		t.Errorf("len 13 Tm = %v, want 52", set.TmC)
	}

	// Length 14 switches to the salt-adjusted formula.
	set = compute(t, strings.Repeat("G", 14))
	want := 64.9 + 41.0*(14.0-16.4)/14.0
	if !almost(set.TmC, want) {
		t.Errorf("len 14 Tm = %v, want %v", set.TmC, want)
	}

	// A raised crossover keeps length 14 on Wallace.
	s14 := seq.Record{ID: "t", Seq: []byte(strings.Repeat("G", 14))}
	set2, err := Compute(s14, Config{TmCrossoverLen: 20})
	if err != nil {
		t.Fatal(err)
	}
	if set2.TmC != 56 {
		t.Errorf("crossover 20, len 14 Tm = %v, want 56", set2.TmC)
	}
}

func TestHomopolymerMonotonicInRunLength(t *testing.T) {
	// Same length, growing dominant run.
	seqs := []string{"AATCGTACGT", "AAATCGTACG", "AAAATCGTAC", "AAAAATCGTA"}
	prev := -1.0
	for _, s := range seqs {
		got := compute(t, s).Homopolymer
		if got < prev {
			t.Fatalf("homopolymer(%q) = %v decreased below %v", s, got, prev)
		}
		prev = got
	}
}

func TestMetricBounds(t *testing.T) {
	for _, s := range []string{
		"A", "AC", "ACG", "ACGT", "GGGGGGGG", "ATATATATAT",
		"GCGCGCGCGCGCGCGC", "AAAAAAAAAATTTTTTTTTT",
	} {
		set := compute(t, s)
		if set.GC < 0 || set.GC > 1 {
			t.Errorf("%q: GC %v out of [0,1]", s, set.GC)
		}
		if set.Entropy < 0 || set.Entropy > 2 {
			t.Errorf("%q: entropy %v out of [0,2]", s, set.Entropy)
		}
		if set.Homopolymer < 0 || set.Homopolymer > 1 {
			t.Errorf("%q: homopolymer %v out of [0,1]", s, set.Homopolymer)
		}
		if set.CodonBias < 0 || set.CodonBias > 1 {
			t.Errorf("%q: codon bias %v out of [0,1]", s, set.CodonBias)
		}
	}
}

func TestIdempotent(t *testing.T) {
	rec := seq.Record{ID: "t", Seq: []byte("ATGCGGGTTTACGCATTTAA")}
	a, err := Compute(rec, Config{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(rec, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeat run differs:\n%+v\n%+v", a, b)
	}
}

func TestInvalidSequences(t *testing.T) {
	var ise *seq.InvalidSequenceError

	_, err := Compute(seq.Record{ID: "n", Seq: []byte("ACGNT")}, Config{})
	if !errors.As(err, &ise) {
		t.Fatalf("want InvalidSequenceError for 'N', got %v", err)
	}

	_, err = Compute(seq.Record{ID: "e"}, Config{})
	if !errors.As(err, &ise) {
		t.Fatalf("want InvalidSequenceError for empty, got %v", err)
	}
}
