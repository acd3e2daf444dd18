// Package risk fuses per-sequence composition metrics and topology scores
// into an ordinal structural-risk assessment.
package risk

import (
	"fmt"

	"knotscan-core/metrics"
	"knotscan-core/topology"
)

// Level is the ordinal risk classification.
type Level int

const (
	Low Level = iota
	Medium
	High
	Critical
)

var levelNames = [...]string{"low", "medium", "high", "critical"}

func (l Level) String() string {
	if l < Low || l > Critical {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText renders the lowercase name used on every output surface.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLevel maps a lowercase level name back to its ordinal.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk level %q", s)
}

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{Low, Medium, High, Critical}
}

// Signal names, used in flag lists and factor breakdowns.
const (
	SignalGC          = "gc"
	SignalTm          = "tm"
	SignalHomopolymer = "homopolymer"
	SignalEntropy     = "entropy"
	SignalCodonBias   = "codon_bias"
	SignalTopology    = "topology"
)

// Factor is one signal's contribution to the aggregate score. Deviation is
// the distance past the signal's threshold normalized to [0,1]; Weighted is
// Deviation times Weight. Elevated marks the signal as flagged, which can
// hold even at zero deviation for at-or-above thresholds.
type Factor struct {
	Signal    string
	Value     float64
	Deviation float64
	Weight    float64
	Weighted  float64
	Elevated  bool
}

// Assessment is the classifier verdict for one sequence. Factors always
// holds all six signals in a fixed order. Overridden is set when the
// elevated-signal override actually raised the level.
type Assessment struct {
	Level      Level
	Score      float64
	Factors    []Factor
	Overridden bool
}

// ElevatedSignals lists the flagged signal names in factor order.
func (a Assessment) ElevatedSignals() []string {
	var out []string
	for _, f := range a.Factors {
		if f.Elevated {
			out = append(out, f.Signal)
		}
	}
	return out
}

// Classifier scores metric sets against a validated configuration.
type Classifier struct {
	cfg Config
}

// NewClassifier validates cfg eagerly so a bad configuration surfaces before
// any sequence is analyzed.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg}, nil
}

// Config returns the validated configuration.
func (c *Classifier) Config() Config { return c.cfg }

// Stems occupy two arms of equal length, so normalized complexity tops out
// at 1/2. The topology deviation scales against that ceiling rather than 1.
const complexityCeiling = 0.5

// Classify fuses one metric set and one topology score into an Assessment.
// It is a pure function of its inputs: the same inputs always produce the
// same verdict.
func (c *Classifier) Classify(m metrics.Set, t topology.Score) Assessment {
	cfg := c.cfg
	factors := []Factor{
		newFactor(SignalGC, m.GC, cfg.Weights.GC,
			bandDeviation(m.GC, cfg.GCLow, cfg.GCHigh),
			m.GC < cfg.GCLow || m.GC > cfg.GCHigh),
		newFactor(SignalTm, m.TmC, cfg.Weights.Tm,
			bandDeviation(m.TmC, cfg.TmLow, cfg.TmHigh),
			m.TmC < cfg.TmLow || m.TmC > cfg.TmHigh),
		newFactor(SignalHomopolymer, m.Homopolymer, cfg.Weights.Homopolymer,
			highDeviation(m.Homopolymer, cfg.HomopolymerMax, 1),
			m.Homopolymer >= cfg.HomopolymerMax),
		newFactor(SignalEntropy, m.Entropy, cfg.Weights.Entropy,
			lowDeviation(m.Entropy, cfg.EntropyMin),
			m.Entropy < cfg.EntropyMin),
		newFactor(SignalCodonBias, m.CodonBias, cfg.Weights.CodonBias,
			highDeviation(m.CodonBias, cfg.CodonBiasMax, 1),
			m.CodonBias >= cfg.CodonBiasMax),
		newFactor(SignalTopology, t.Complexity, cfg.Weights.Topology,
			highDeviation(t.Complexity, cfg.ComplexityMax, complexityCeiling),
			t.Complexity >= cfg.ComplexityMax),
	}

	var score float64
	elevated := 0
	for _, f := range factors {
		score += f.Weighted
		if f.Elevated {
			elevated++
		}
	}
	score = clip01(score)

	level := c.band(score)
	overridden := false
	if elevated >= cfg.OverrideMin && level < Critical {
		level++
		overridden = true
	}
	return Assessment{Level: level, Score: score, Factors: factors, Overridden: overridden}
}

func newFactor(signal string, value, weight, deviation float64, elevated bool) Factor {
	return Factor{
		Signal:    signal,
		Value:     value,
		Deviation: deviation,
		Weight:    weight,
		Weighted:  deviation * weight,
		Elevated:  elevated,
	}
}

// band maps an aggregate score onto a level. Band boundaries belong to the
// upper band.
func (c *Classifier) band(score float64) Level {
	b := c.cfg.Bands
	switch {
	case score < b[0]:
		return Low
	case score < b[1]:
		return Medium
	case score < b[2]:
		return High
	default:
		return Critical
	}
}

// bandDeviation is the distance outside [lo,hi] scaled by half the band
// width. Inside the band it is zero.
func bandDeviation(v, lo, hi float64) float64 {
	var dist float64
	switch {
	case v < lo:
		dist = lo - v
	case v > hi:
		dist = v - hi
	default:
		return 0
	}
	return clip01(dist / ((hi - lo) / 2))
}

// highDeviation is the distance at or above thr scaled by the headroom up to
// max. At or below the threshold it is zero.
func highDeviation(v, thr, max float64) float64 {
	if v <= thr {
		return 0
	}
	if max <= thr {
		return 1
	}
	return clip01((v - thr) / (max - thr))
}

// lowDeviation is the distance below thr scaled by the threshold itself.
func lowDeviation(v, thr float64) float64 {
	if v >= thr || thr <= 0 {
		return 0
	}
	return clip01((thr - v) / thr)
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
