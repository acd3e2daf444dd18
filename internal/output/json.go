// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"knotscan-core/predict"
	"knotscan/pkg/api"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ToAPIResult converts a domain result to the stable wire schema (v1).
func ToAPIResult(r predict.Result) api.ResultV1 {
	v := api.ResultV1{
		SequenceID: r.ID,
		Source:     r.Source,
		Length:     r.Length,
	}
	if r.Window != nil {
		v.Window = &api.WindowV1{Start: r.Window.Start, End: r.Window.End}
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
		return v
	}

	m := r.Metrics
	v.Metrics = &api.MetricsV1{
		GC:          m.GC,
		TmC:         m.TmC,
		Homopolymer: m.Homopolymer,
		Entropy:     m.Entropy,
		CodonBias:   m.CodonBias,
		CodonFreq:   copyFreq(m.CodonFreq),
	}

	var stems []api.StemV1
	for _, s := range r.Topology.Stems {
		stems = append(stems, api.StemV1{Offset: s.Offset, Start: s.Start, PairStart: s.PairStart, Length: s.Len})
	}
	v.Topology = &api.TopologyV1{
		Crossings:  r.Topology.Crossings,
		Complexity: r.Topology.Complexity,
		Stems:      stems,
	}

	a := r.Risk
	var factors []api.FactorV1
	for _, f := range a.Factors {
		factors = append(factors, api.FactorV1{
			Signal:    f.Signal,
			Value:     f.Value,
			Deviation: f.Deviation,
			Weight:    f.Weight,
			Weighted:  f.Weighted,
			Elevated:  f.Elevated,
		})
	}
	v.Risk = &api.RiskV1{
		Level:      a.Level.String(),
		Score:      a.Score,
		Flags:      a.ElevatedSignals(),
		Factors:    factors,
		Overridden: a.Overridden,
	}
	return v
}

func copyFreq(m map[string]float64) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ToAPIResults converts a whole batch.
func ToAPIResults(list []predict.Result) []api.ResultV1 {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	return out
}

// WriteJSON writes a single pretty-printed JSON array of v1 results.
func WriteJSON(w io.Writer, list []predict.Result) error {
	return EncodePretty(w, ToAPIResults(list))
}
