package metrics

import (
	"math"
	"testing"
)

func TestCodonUsageShortInput(t *testing.T) {
	for _, s := range []string{"", "A", "AC"} {
		freq, bias := codonUsage([]byte(s))
		if freq != nil || bias != 0 {
			t.Errorf("codonUsage(%q) = (%v, %v), want (nil, 0)", s, freq, bias)
		}
	}
}

func TestCodonUsageSingleCodon(t *testing.T) {
	freq, bias := codonUsage([]byte("AAA"))
	if bias != 1.0 {
		t.Errorf("bias = %v, want 1.0 for a single repeated codon", bias)
	}
	if len(freq) != 1 || freq["AAA"] != 1.0 {
		t.Errorf("freq = %v, want {AAA:1}", freq)
	}
}

func TestCodonUsageLeftoverIgnored(t *testing.T) {
	// Trailing "C" is not a codon.
	freq, bias := codonUsage([]byte("AAAC"))
	if len(freq) != 1 || freq["AAA"] != 1.0 {
		t.Errorf("freq = %v, want {AAA:1}", freq)
	}
	if bias != 1.0 {
		t.Errorf("bias = %v, want 1.0", bias)
	}
}

func TestCodonUsageFourDistinct(t *testing.T) {
	freq, bias := codonUsage([]byte("ATGCATGCATGC"))

	want := map[string]float64{"ATG": 0.25, "CAT": 0.25, "GCA": 0.25, "TGC": 0.25}
	if len(freq) != len(want) {
		t.Fatalf("freq = %v, want %v", freq, want)
	}
	for c, f := range want {
		if freq[c] != f {
			t.Errorf("freq[%s] = %v, want %v", c, freq[c], f)
		}
	}

	// chi-square of 4 singleton codons vs uniform over 64, normalized by 63*4.
	if wantBias := 60.0 / 252.0; math.Abs(bias-wantBias) > 1e-12 {
		t.Errorf("bias = %v, want %v", bias, wantBias)
	}
}

func TestCodonBiasOrdering(t *testing.T) {
	// A maximally skewed codon pool must out-score a varied one.
	_, skewed := codonUsage([]byte("AAAAAAAAAAAA"))
	_, varied := codonUsage([]byte("ATGCATGCATGC"))
	if skewed <= varied {
		t.Errorf("skewed bias %v not greater than varied bias %v", skewed, varied)
	}
}
