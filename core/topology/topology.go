// core/topology/topology.go
package topology

import (
	"sort"

	"knotscan-core/seq"
)

// DefaultMinStemLen is the shortest complementary run that counts as a stem.
const DefaultMinStemLen = 3

// Config bounds the stem search.
type Config struct {
	MinStemLen int // <=0 means DefaultMinStemLen
	MaxOffset  int // cap on |alignment offset|; <=0 means full sequence length
}

func (c Config) minStem() int {
	if c.MinStemLen <= 0 {
		return DefaultMinStemLen
	}
	return c.MinStemLen
}

// Stem is one self-complementary region: bases [Start,Start+Len) pair with
// bases [PairStart,PairStart+Len). Offset is the alignment offset of the
// anti-diagonal the stem lies on.
type Stem struct {
	Offset    int
	Start     int
	PairStart int
	Len       int
}

func (a Stem) overlaps(b Stem) bool {
	return spans(a.Start, b.Start, a.Len, b.Len) ||
		spans(a.Start, b.PairStart, a.Len, b.Len) ||
		spans(a.PairStart, b.Start, a.Len, b.Len) ||
		spans(a.PairStart, b.PairStart, a.Len, b.Len)
}

func spans(aLo, bLo, aLen, bLen int) bool {
	return aLo < bLo+bLen && bLo < aLo+aLen
}

// Score is the topology readout. Crossings counts the accepted stems;
// Complexity normalizes the count by length/minStem, capped at 1.0, so
// sequences of different lengths are comparable.
type Score struct {
	Crossings  int
	Complexity float64
	Stems      []Stem
}

// Analyze derives the crossing-number proxy for one record. Sliding the
// reverse complement to alignment offset s pairs position p with
// q = len-1+s-p, so each offset is one anti-diagonal of the pairing matrix;
// the longest complementary run per offset is that offset's candidate stem.
func Analyze(rec seq.Record, cfg Config) (Score, error) {
	if err := seq.Validate(rec.ID, rec.Seq); err != nil {
		return Score{}, err
	}
	n := len(rec.Seq)
	minStem := cfg.minStem()
	maxOff := cfg.MaxOffset
	if maxOff <= 0 || maxOff > n {
		maxOff = n
	}

	kept := selectStems(candidates(rec.Seq, maxOff, minStem))
	density := float64(len(kept)) * float64(minStem) / float64(n)
	if density > 1 {
		density = 1
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		return kept[i].Offset < kept[j].Offset
	})
	return Score{Crossings: len(kept), Complexity: density, Stems: kept}, nil
}

// candidates walks every allowed anti-diagonal and keeps the longest
// complementary run per offset (ties: earliest start), dropping runs
// shorter than minStem.
func candidates(s []byte, maxOff, minStem int) []Stem {
	n := len(s)
	var out []Stem
	for d := 1; d <= 2*n-3; d++ {
		off := d - (n - 1)
		if off > maxOff || off < -maxOff {
			continue
		}
		lo := 0
		if d > n-1 {
			lo = d - (n - 1)
		}
		best := Stem{Offset: off, Len: 0}
		run := 0
		for p := lo; 2*p < d; p++ {
			if seq.Complementary(s[p], s[d-p]) {
				run++
			} else {
				run = 0
			}
			if run > best.Len {
				best.Start = p - run + 1
				best.Len = run
			}
		}
		if best.Len >= minStem {
			best.PairStart = d - best.Start - best.Len + 1
			out = append(out, best)
		}
	}
	return out
}

// selectStems keeps a non-overlapping subset greedily, longest first; ties
// prefer the earlier offset, then the earlier start. Overlap is judged on
// the union of both arm intervals.
func selectStems(cands []Stem) []Stem {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Len != cands[j].Len {
			return cands[i].Len > cands[j].Len
		}
		if cands[i].Offset != cands[j].Offset {
			return cands[i].Offset < cands[j].Offset
		}
		return cands[i].Start < cands[j].Start
	})
	var kept []Stem
	for _, c := range cands {
		clash := false
		for _, k := range kept {
			if c.overlaps(k) {
				clash = true
				break
			}
		}
		if !clash {
			kept = append(kept, c)
		}
	}
	return kept
}
