// internal/charts/charts.go
// Package charts renders whole-run PNG figures into the artifact directory.
// Only successfully analyzed records contribute data points; a figure with
// nothing to show is skipped rather than written empty.
package charts

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"knotscan-core/predict"
	"knotscan-core/risk"
)

// Level palette, shared with the landscape and distribution figures.
var (
	colorLow      = color.RGBA{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF}
	colorMedium   = color.RGBA{R: 0xA2, G: 0x3B, B: 0x72, A: 0xFF}
	colorHigh     = color.RGBA{R: 0xF1, G: 0x8F, B: 0x01, A: 0xFF}
	colorCritical = color.RGBA{R: 0xC7, G: 0x3E, B: 0x1D, A: 0xFF}
)

func levelColor(lv risk.Level) color.Color {
	switch lv {
	case risk.Medium:
		return colorMedium
	case risk.High:
		return colorHigh
	case risk.Critical:
		return colorCritical
	default:
		return colorLow
	}
}

// Renderer draws charts for one run. Decision boundaries are taken from the
// classifier configuration so the figures match the verdicts.
type Renderer struct {
	dir string
	dpi int
	cfg risk.Config
}

// New returns a renderer writing PNGs under dir at the given DPI.
func New(dir string, dpi int, cfg risk.Config) *Renderer {
	if dpi <= 0 {
		dpi = 300
	}
	return &Renderer{dir: dir, dpi: dpi, cfg: cfg}
}

// RenderAll draws every figure that has data and reports the written paths.
// Rendering stops at the first write failure.
func (r *Renderer) RenderAll(results []predict.Result) ([]string, error) {
	ok := analyzed(results)
	if len(ok) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, err
	}

	figures := []struct {
		name  string
		w, h  vg.Length
		build func() (*plot.Plot, error)
	}{
		{"risk_distribution.png", 10 * vg.Inch, 6 * vg.Inch,
			func() (*plot.Plot, error) { return r.riskDistribution(ok) }},
		{"gc_vs_complexity.png", 8 * vg.Inch, 6 * vg.Inch,
			func() (*plot.Plot, error) { return r.gcVsComplexity(ok) }},
		{"homopolymer_vs_complexity.png", 8 * vg.Inch, 6 * vg.Inch,
			func() (*plot.Plot, error) { return r.homopolymerVsComplexity(ok) }},
		{"tm_distribution.png", 8 * vg.Inch, 6 * vg.Inch,
			func() (*plot.Plot, error) { return r.tmDistribution(ok) }},
		{"entropy_distribution.png", 8 * vg.Inch, 6 * vg.Inch,
			func() (*plot.Plot, error) { return r.entropyDistribution(ok) }},
		{"codon_usage.png", 10 * vg.Inch, 6 * vg.Inch,
			func() (*plot.Plot, error) { return r.codonUsage(ok) }},
	}

	var written []string
	for _, fig := range figures {
		p, err := fig.build()
		if err != nil {
			return written, err
		}
		if p == nil {
			continue
		}
		path, err := r.write(fig.name, p, fig.w, fig.h)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	for _, land := range landscapes(ok) {
		p, err := r.complexityLandscape(land.id, land.pts)
		if err != nil {
			return written, err
		}
		path, err := r.write("complexity_landscape_"+sanitize(land.id)+".png", p, 14*vg.Inch, 8*vg.Inch)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (r *Renderer) write(name string, p *plot.Plot, w, h vg.Length) (string, error) {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.dpi))
	p.Draw(draw.New(c))

	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func analyzed(results []predict.Result) []predict.Result {
	ok := make([]predict.Result, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			ok = append(ok, res)
		}
	}
	return ok
}

// sanitize keeps chart filenames portable for ids like "lcl:chr2:250-500".
func sanitize(id string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return c
		case c == '.', c == '_', c == '-':
			return c
		default:
			return '_'
		}
	}, id)
}
