// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for per-sequence verdicts.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	SequenceID string      `json:"sequence_id"`
	Source     string      `json:"source,omitempty"`
	Window     *WindowV1   `json:"window,omitempty"`
	Length     int         `json:"length"`
	Metrics    *MetricsV1  `json:"metrics,omitempty"`
	Topology   *TopologyV1 `json:"topology,omitempty"`
	Risk       *RiskV1     `json:"risk,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// WindowV1 is the half-open source interval of a windowed record.
type WindowV1 struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type MetricsV1 struct {
	GC          float64            `json:"gc"`
	TmC         float64            `json:"tm_c"`
	Homopolymer float64            `json:"homopolymer"`
	Entropy     float64            `json:"entropy"`
	CodonBias   float64            `json:"codon_bias"`
	CodonFreq   map[string]float64 `json:"codon_frequencies,omitempty"`
}

type TopologyV1 struct {
	Crossings  int      `json:"crossings"`
	Complexity float64  `json:"complexity"`
	Stems      []StemV1 `json:"stems,omitempty"`
}

type StemV1 struct {
	Offset    int `json:"offset"`
	Start     int `json:"start"`
	PairStart int `json:"pair_start"`
	Length    int `json:"length"`
}

type RiskV1 struct {
	Level      string     `json:"level"` // "low" | "medium" | "high" | "critical"
	Score      float64    `json:"score"`
	Flags      []string   `json:"flags,omitempty"`
	Factors    []FactorV1 `json:"factors,omitempty"`
	Overridden bool       `json:"override,omitempty"`
}

type FactorV1 struct {
	Signal    string  `json:"signal"`
	Value     float64 `json:"value"`
	Deviation float64 `json:"deviation"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Elevated  bool    `json:"elevated,omitempty"`
}

// SummaryV1 is the stable schema for whole-run summaries.
type SummaryV1 struct {
	RunID          string         `json:"run_id,omitempty"`
	StartedAt      string         `json:"started_at,omitempty"` // RFC 3339
	FinishedAt     string         `json:"finished_at,omitempty"`
	Total          int            `json:"total"`
	Analyzed       int            `json:"analyzed"`
	Failed         int            `json:"failed"`
	Skipped        int            `json:"skipped,omitempty"`
	Distribution   map[string]int `json:"risk_distribution"`
	MeanScore      float64        `json:"mean_score"`
	StdDevScore    float64        `json:"stddev_score"`
	MeanGC         float64        `json:"mean_gc"`
	MeanComplexity float64        `json:"mean_complexity"`
	Elevated       map[string]int `json:"elevated_counts,omitempty"`
	Failures       []FailureV1    `json:"failures,omitempty"`
}

type FailureV1 struct {
	SequenceID string `json:"sequence_id"`
	Reason     string `json:"reason"`
}
