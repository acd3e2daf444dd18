// core/risk/config.go
package risk

import (
	"fmt"
	"math"
)

// InvalidConfigError reports a malformed classifier configuration. A bad
// configuration would silently mis-classify every sequence, so construction
// rejects it before any analysis runs.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("risk config: %s: %s", e.Field, e.Reason)
}

// Weights are the per-signal contributions to the aggregate score.
// They must sum to 1.
type Weights struct {
	GC          float64
	Tm          float64
	Homopolymer float64
	Entropy     float64
	CodonBias   float64
	Topology    float64
}

func (w Weights) sum() float64 {
	return w.GC + w.Tm + w.Homopolymer + w.Entropy + w.CodonBias + w.Topology
}

// Config is the full threshold surface of the classifier.
type Config struct {
	GCLow  float64 // acceptable GC band
	GCHigh float64
	TmLow  float64 // acceptable Tm band, °C
	TmHigh float64

	HomopolymerMax float64 // elevated at or above
	EntropyMin     float64 // elevated below
	CodonBiasMax   float64 // elevated at or above
	ComplexityMax  float64 // elevated at or above

	Weights     Weights
	Bands       [3]float64 // low/medium, medium/high, high/critical boundaries
	OverrideMin int        // elevated-signal count that raises the level one band
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		GCLow:          0.50,
		GCHigh:         0.60,
		TmLow:          55,
		TmHigh:         75,
		HomopolymerMax: 0.3,
		EntropyMin:     1.5,
		CodonBiasMax:   0.3,
		ComplexityMax:  0.3,
		Weights: Weights{
			GC:          0.15,
			Tm:          0.15,
			Homopolymer: 0.20,
			Entropy:     0.15,
			CodonBias:   0.10,
			Topology:    0.25,
		},
		Bands:       [3]float64{0.25, 0.50, 0.75},
		OverrideMin: 3,
	}
}

const weightEps = 1e-9

// Validate rejects band inversions, out-of-range thresholds, weights that do
// not sum to 1, and non-ascending score bands.
func (c Config) Validate() error {
	if c.GCLow < 0 || c.GCHigh > 1 || c.GCLow >= c.GCHigh {
		return &InvalidConfigError{Field: "gc_band", Reason: fmt.Sprintf("need 0 <= low < high <= 1, got [%g, %g]", c.GCLow, c.GCHigh)}
	}
	if c.TmLow >= c.TmHigh {
		return &InvalidConfigError{Field: "tm_band", Reason: fmt.Sprintf("need low < high, got [%g, %g]", c.TmLow, c.TmHigh)}
	}
	if c.HomopolymerMax < 0 || c.HomopolymerMax > 1 {
		return &InvalidConfigError{Field: "homopolymer_max", Reason: fmt.Sprintf("need a value in [0,1], got %g", c.HomopolymerMax)}
	}
	if c.EntropyMin < 0 || c.EntropyMin > 2 {
		return &InvalidConfigError{Field: "entropy_min", Reason: fmt.Sprintf("need a value in [0,2], got %g", c.EntropyMin)}
	}
	if c.CodonBiasMax < 0 || c.CodonBiasMax > 1 {
		return &InvalidConfigError{Field: "codon_bias_max", Reason: fmt.Sprintf("need a value in [0,1], got %g", c.CodonBiasMax)}
	}
	if c.ComplexityMax < 0 || c.ComplexityMax > 1 {
		return &InvalidConfigError{Field: "complexity_max", Reason: fmt.Sprintf("need a value in [0,1], got %g", c.ComplexityMax)}
	}
	for _, w := range []float64{c.Weights.GC, c.Weights.Tm, c.Weights.Homopolymer, c.Weights.Entropy, c.Weights.CodonBias, c.Weights.Topology} {
		if w < 0 {
			return &InvalidConfigError{Field: "weights", Reason: fmt.Sprintf("negative weight %g", w)}
		}
	}
	if s := c.Weights.sum(); math.Abs(s-1) > weightEps {
		return &InvalidConfigError{Field: "weights", Reason: fmt.Sprintf("must sum to 1, got %g", s)}
	}
	if !(c.Bands[0] > 0 && c.Bands[0] < c.Bands[1] && c.Bands[1] < c.Bands[2] && c.Bands[2] < 1) {
		return &InvalidConfigError{Field: "bands", Reason: fmt.Sprintf("need 0 < b0 < b1 < b2 < 1, got %v", c.Bands)}
	}
	if c.OverrideMin < 1 {
		return &InvalidConfigError{Field: "override_min", Reason: fmt.Sprintf("need at least 1, got %d", c.OverrideMin)}
	}
	return nil
}
