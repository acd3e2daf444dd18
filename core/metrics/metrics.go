// core/metrics/metrics.go
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"knotscan-core/seq"
)

// DefaultTmCrossoverLen is the sequence length at which melting-temperature
// estimation switches from the Wallace rule to the salt-adjusted formula.
const DefaultTmCrossoverLen = 14

// Config holds the metric-computation knobs.
type Config struct {
	TmCrossoverLen int // <=0 means DefaultTmCrossoverLen
}

func (c Config) crossover() int {
	if c.TmCrossoverLen <= 0 {
		return DefaultTmCrossoverLen
	}
	return c.TmCrossoverLen
}

// Set bundles the per-sequence biophysical metrics. CodonFreq maps observed
// frame-0 codons to their frequency; codons never observed are absent.
type Set struct {
	GC          float64
	TmC         float64
	Homopolymer float64
	Entropy     float64
	CodonBias   float64
	CodonFreq   map[string]float64
}

// Compute validates rec and derives its metrics. Pure: the result depends
// only on the sequence bytes and cfg.
func Compute(rec seq.Record, cfg Config) (Set, error) {
	if err := seq.Validate(rec.ID, rec.Seq); err != nil {
		return Set{}, err
	}
	n := len(rec.Seq)
	var counts [4]int
	for _, b := range rec.Seq {
		counts[baseIndex(b)]++
	}
	at := counts[0] + counts[3]
	gc := counts[1] + counts[2]

	s := Set{
		GC:          float64(gc) / float64(n),
		TmC:         meltingTemp(at, gc, n, cfg.crossover()),
		Homopolymer: homopolymerScore(rec.Seq),
		Entropy:     entropyBits(counts, n),
	}
	s.CodonFreq, s.CodonBias = codonUsage(rec.Seq)
	return s, nil
}

// baseIndex maps a validated base to its slot (A C G T). Callers must have
// run seq.Validate first.
func baseIndex(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	default:
		return 3
	}
}

// meltingTemp picks the formula by length: the Wallace rule is only accurate
// for short oligomers, longer sequences get the salt-adjusted empirical form.
func meltingTemp(at, gc, n, crossover int) float64 {
	if n < crossover {
		return float64(2*at + 4*gc)
	}
	return 64.9 + 41.0*(float64(gc)-16.4)/float64(n)
}

// homopolymerScore sums max(0, runLen-1) over maximal single-base runs,
// normalized by sequence length and capped at 1.0. A fully varied sequence
// scores 0; long repeats push the score toward 1.
func homopolymerScore(s []byte) float64 {
	run := 1
	total := 0
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			continue
		}
		total += run - 1
		run = 1
	}
	total += run - 1
	return math.Min(float64(total)/float64(len(s)), 1.0)
}

// entropyBits is the Shannon entropy over the four single-nucleotide
// frequencies. stat.Entropy works in nats; convert to bits (max 2.0).
func entropyBits(counts [4]int, n int) float64 {
	p := make([]float64, 4)
	for i, c := range counts {
		p[i] = float64(c) / float64(n)
	}
	return stat.Entropy(p) / math.Ln2
}
