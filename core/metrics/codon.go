// core/metrics/codon.go
package metrics

import "gonum.org/v1/gonum/stat"

const codonSpace = 64

var bases = [4]byte{'A', 'C', 'G', 'T'}

// codonUsage tallies non-overlapping frame-0 triplets (trailing 1-2 bases
// ignored) and scores how far the observed codon distribution sits from
// uniform. The chi-square statistic against the uniform reference is divided
// by its maximum 63*n (all n codons identical), landing the bias in [0,1].
// Fewer than three bases yields (nil, 0).
func codonUsage(s []byte) (map[string]float64, float64) {
	n := len(s) / 3
	if n == 0 {
		return nil, 0
	}

	var counts [codonSpace]int
	for i := 0; i+3 <= 3*n; i += 3 {
		idx := baseIndex(s[i])<<4 | baseIndex(s[i+1])<<2 | baseIndex(s[i+2])
		counts[idx]++
	}

	freq := make(map[string]float64, 8)
	obs := make([]float64, codonSpace)
	exp := make([]float64, codonSpace)
	uniform := float64(n) / codonSpace
	var codon [3]byte
	for i, k := range counts {
		obs[i] = float64(k)
		exp[i] = uniform
		if k == 0 {
			continue
		}
		codon[0] = bases[i>>4&3]
		codon[1] = bases[i>>2&3]
		codon[2] = bases[i&3]
		freq[string(codon[:])] = float64(k) / float64(n)
	}

	chi := stat.ChiSquare(obs, exp)
	return freq, chi / (float64(codonSpace-1) * float64(n))
}
