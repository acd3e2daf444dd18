// internal/charts/figures.go
package charts

import (
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"knotscan-core/predict"
	"knotscan-core/risk"

	"knotscan/internal/common"
)

const (
	histBins  = 16
	topCodons = 12
)

func (r *Renderer) riskDistribution(ok []predict.Result) (*plot.Plot, error) {
	counts := make(map[risk.Level]int)
	for _, res := range ok {
		counts[res.Risk.Level]++
	}

	p := plot.New()
	p.Title.Text = "Risk level distribution"
	p.Y.Label.Text = "Sequences"

	// All four levels stay on the axis even when empty.
	levels := risk.Levels()
	names := make([]string, len(levels))
	for i, lv := range levels {
		names[i] = lv.String()
		bar, err := plotter.NewBarChart(plotter.Values{float64(counts[lv])}, vg.Points(40))
		if err != nil {
			return nil, err
		}
		bar.XMin = float64(i)
		bar.Color = levelColor(lv)
		p.Add(bar)
	}
	p.NominalX(names...)
	return p, nil
}

func (r *Renderer) gcVsComplexity(ok []predict.Result) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(ok))
	maxY := r.cfg.ComplexityMax
	for i, res := range ok {
		pts[i] = plotter.XY{X: res.Metrics.GC, Y: res.Topology.Complexity}
		if res.Topology.Complexity > maxY {
			maxY = res.Topology.Complexity
		}
	}

	p := plot.New()
	p.Title.Text = "GC content vs knot complexity"
	p.X.Label.Text = "GC fraction"
	p.Y.Label.Text = "Complexity"
	if err := addScatter(p, pts); err != nil {
		return nil, err
	}
	for _, x := range []float64{r.cfg.GCLow, r.cfg.GCHigh} {
		if err := addThreshold(p, x, 0, x, maxY); err != nil {
			return nil, err
		}
	}
	if err := addThreshold(p, 0, r.cfg.ComplexityMax, 1, r.cfg.ComplexityMax); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Renderer) homopolymerVsComplexity(ok []predict.Result) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(ok))
	maxY := r.cfg.ComplexityMax
	for i, res := range ok {
		pts[i] = plotter.XY{X: res.Metrics.Homopolymer, Y: res.Topology.Complexity}
		if res.Topology.Complexity > maxY {
			maxY = res.Topology.Complexity
		}
	}

	p := plot.New()
	p.Title.Text = "Homopolymer load vs knot complexity"
	p.X.Label.Text = "Homopolymer score"
	p.Y.Label.Text = "Complexity"
	if err := addScatter(p, pts); err != nil {
		return nil, err
	}
	if err := addThreshold(p, r.cfg.HomopolymerMax, 0, r.cfg.HomopolymerMax, maxY); err != nil {
		return nil, err
	}
	if err := addThreshold(p, 0, r.cfg.ComplexityMax, 1, r.cfg.ComplexityMax); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Renderer) tmDistribution(ok []predict.Result) (*plot.Plot, error) {
	xs := make([]float64, len(ok))
	for i, res := range ok {
		xs[i] = res.Metrics.TmC
	}

	p := plot.New()
	p.Title.Text = "Melting temperature distribution"
	p.X.Label.Text = "Tm (°C)"
	p.Y.Label.Text = "Sequences"
	if err := addHist(p, xs); err != nil {
		return nil, err
	}
	top := maxBinCount(xs, histBins)
	for _, x := range []float64{r.cfg.TmLow, r.cfg.TmHigh} {
		if err := addThreshold(p, x, 0, x, top); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *Renderer) entropyDistribution(ok []predict.Result) (*plot.Plot, error) {
	xs := make([]float64, len(ok))
	for i, res := range ok {
		xs[i] = res.Metrics.Entropy
	}

	p := plot.New()
	p.Title.Text = "Shannon entropy distribution"
	p.X.Label.Text = "Entropy (bits)"
	p.Y.Label.Text = "Sequences"
	if err := addHist(p, xs); err != nil {
		return nil, err
	}
	if err := addThreshold(p, r.cfg.EntropyMin, 0, r.cfg.EntropyMin, maxBinCount(xs, histBins)); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Renderer) codonUsage(ok []predict.Result) (*plot.Plot, error) {
	totals := make(map[string]float64)
	for _, res := range ok {
		for codon, f := range res.Metrics.CodonFreq {
			totals[codon] += f
		}
	}
	if len(totals) == 0 {
		return nil, nil
	}

	type usage struct {
		codon string
		total float64
	}
	ranked := make([]usage, 0, len(totals))
	for codon, total := range totals {
		ranked = append(ranked, usage{codon, total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].total != ranked[j].total {
			return ranked[i].total > ranked[j].total
		}
		return ranked[i].codon < ranked[j].codon
	})
	if len(ranked) > topCodons {
		ranked = ranked[:topCodons]
	}

	vals := make(plotter.Values, len(ranked))
	names := make([]string, len(ranked))
	for i, u := range ranked {
		vals[i] = u.total
		names[i] = u.codon
	}

	p := plot.New()
	p.Title.Text = "Codon usage"
	p.Y.Label.Text = "Aggregate frequency"
	bars, err := plotter.NewBarChart(vals, vg.Points(24))
	if err != nil {
		return nil, err
	}
	bars.Color = colorLow
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

func (r *Renderer) complexityLandscape(id string, pts plotter.XYs) (*plot.Plot, error) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	p := plot.New()
	p.Title.Text = "Complexity landscape: " + id
	p.X.Label.Text = "Position (bp)"
	p.Y.Label.Text = "Knot complexity"

	ln, sc, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	ln.Color = colorLow
	sc.GlyphStyle.Color = colorCritical
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(ln, sc)

	maxX := pts[len(pts)-1].X
	if err := addThreshold(p, 0, r.cfg.ComplexityMax, maxX, r.cfg.ComplexityMax); err != nil {
		return nil, err
	}
	return p, nil
}

type landscapeData struct {
	id  string
	pts plotter.XYs
}

// landscapes groups windowed results by parent sequence, keyed by the id the
// window suffix was derived from.
func landscapes(ok []predict.Result) []landscapeData {
	group := make(map[string]plotter.XYs)
	for _, res := range ok {
		if res.Window == nil {
			continue
		}
		base, _, _, okSplit := common.SplitWindowSuffix(res.ID)
		if !okSplit {
			continue
		}
		group[base] = append(group[base], plotter.XY{
			X: float64(res.Window.Start),
			Y: res.Topology.Complexity,
		})
	}

	ids := make([]string, 0, len(group))
	for id := range group {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]landscapeData, 0, len(ids))
	for _, id := range ids {
		out = append(out, landscapeData{id: id, pts: group[id]})
	}
	return out
}

func addScatter(p *plot.Plot, pts plotter.XYs) error {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = colorLow
	sc.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(sc)
	return nil
}

func addHist(p *plot.Plot, xs []float64) error {
	h, err := plotter.NewHist(plotter.Values(xs), histBins)
	if err != nil {
		return err
	}
	h.FillColor = colorLow
	p.Add(h)
	return nil
}

func addThreshold(p *plot.Plot, x0, y0, x1, y1 float64) error {
	ln, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return err
	}
	ln.Color = colorCritical
	ln.Width = vg.Points(1)
	ln.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(ln)
	return nil
}

// maxBinCount mirrors the histogram binning so threshold lines span the
// tallest bar.
func maxBinCount(xs []float64, bins int) float64 {
	if len(xs) == 0 {
		return 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		return float64(len(xs))
	}
	counts := make([]int, bins)
	for _, x := range xs {
		i := int(float64(bins) * (x - lo) / (hi - lo))
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return float64(max)
}
