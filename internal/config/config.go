// Package config resolves the runtime configuration from YAML file, process
// environment and command-line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"knotscan-core/metrics"
	"knotscan-core/predict"
	"knotscan-core/risk"
	"knotscan-core/topology"

	"knotscan/internal/cli"
)

// File is the YAML configuration surface. Absent keys keep their defaults,
// so a partial file overlays DefaultFile.
type File struct {
	Analysis  Analysis `yaml:"analysis"`
	Window    int      `yaml:"window"`
	Stride    int      `yaml:"stride"`
	MinLength int      `yaml:"min_length"`
	ChartDPI  int      `yaml:"chart_dpi"`
}

// Analysis mirrors the classifier, metric and topology knobs.
type Analysis struct {
	GCLow          float64   `yaml:"gc_low"`
	GCHigh         float64   `yaml:"gc_high"`
	TmLow          float64   `yaml:"tm_low"`
	TmHigh         float64   `yaml:"tm_high"`
	HomopolymerMax float64   `yaml:"homopolymer_max"`
	EntropyMin     float64   `yaml:"entropy_min"`
	CodonBiasMax   float64   `yaml:"codon_bias_max"`
	ComplexityMax  float64   `yaml:"complexity_max"`
	Weights        Weights   `yaml:"weights"`
	Bands          []float64 `yaml:"bands"`
	OverrideMin    int       `yaml:"override_min"`
	MinStemLen     int       `yaml:"min_stem_len"`
	MaxOffset      int       `yaml:"max_offset"`
	TmCrossoverLen int       `yaml:"tm_crossover_len"`
}

// Weights holds the per-signal score weights.
type Weights struct {
	GC          float64 `yaml:"gc"`
	Tm          float64 `yaml:"tm"`
	Homopolymer float64 `yaml:"homopolymer"`
	Entropy     float64 `yaml:"entropy"`
	CodonBias   float64 `yaml:"codon_bias"`
	Topology    float64 `yaml:"topology"`
}

// DefaultChartDPI is the resolution chart PNGs render at.
const DefaultChartDPI = 300

// DefaultFile returns the built-in configuration.
func DefaultFile() File {
	rc := risk.DefaultConfig()
	return File{
		Analysis: Analysis{
			GCLow:          rc.GCLow,
			GCHigh:         rc.GCHigh,
			TmLow:          rc.TmLow,
			TmHigh:         rc.TmHigh,
			HomopolymerMax: rc.HomopolymerMax,
			EntropyMin:     rc.EntropyMin,
			CodonBiasMax:   rc.CodonBiasMax,
			ComplexityMax:  rc.ComplexityMax,
			Weights: Weights{
				GC:          rc.Weights.GC,
				Tm:          rc.Weights.Tm,
				Homopolymer: rc.Weights.Homopolymer,
				Entropy:     rc.Weights.Entropy,
				CodonBias:   rc.Weights.CodonBias,
				Topology:    rc.Weights.Topology,
			},
			Bands:          []float64{rc.Bands[0], rc.Bands[1], rc.Bands[2]},
			OverrideMin:    rc.OverrideMin,
			MinStemLen:     topology.DefaultMinStemLen,
			MaxOffset:      0,
			TmCrossoverLen: metrics.DefaultTmCrossoverLen,
		},
		ChartDPI: DefaultChartDPI,
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (File, error) {
	f := DefaultFile()
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Predict converts the analysis section into a predictor configuration.
func (f File) Predict() (predict.Config, error) {
	if len(f.Analysis.Bands) != 3 {
		return predict.Config{}, fmt.Errorf("bands: expected 3 boundaries, got %d", len(f.Analysis.Bands))
	}
	a := f.Analysis
	return predict.Config{
		Metrics: metrics.Config{TmCrossoverLen: a.TmCrossoverLen},
		Topology: topology.Config{
			MinStemLen: a.MinStemLen,
			MaxOffset:  a.MaxOffset,
		},
		Risk: risk.Config{
			GCLow:          a.GCLow,
			GCHigh:         a.GCHigh,
			TmLow:          a.TmLow,
			TmHigh:         a.TmHigh,
			HomopolymerMax: a.HomopolymerMax,
			EntropyMin:     a.EntropyMin,
			CodonBiasMax:   a.CodonBiasMax,
			ComplexityMax:  a.ComplexityMax,
			Weights: risk.Weights{
				GC:          a.Weights.GC,
				Tm:          a.Weights.Tm,
				Homopolymer: a.Weights.Homopolymer,
				Entropy:     a.Weights.Entropy,
				CodonBias:   a.Weights.CodonBias,
				Topology:    a.Weights.Topology,
			},
			Bands:       [3]float64{a.Bands[0], a.Bands[1], a.Bands[2]},
			OverrideMin: a.OverrideMin,
		},
	}, nil
}

// Settings is the fully resolved runtime configuration the application runs
// with. Precedence: flags > environment > config file > defaults.
type Settings struct {
	Predict   predict.Config
	Window    int
	Stride    int
	MinLength int
	Threads   int
	Output    string
	Header    bool
	Rank      bool
	OutDir    string
	Charts    bool
	ChartDPI  int
	DBPath    string
	LogLevel  string
	Quiet     bool
}

// Environment overrides, applied between the config file and the flags.
const (
	EnvLogLevel = "KNOTSCAN_LOG_LEVEL"
	EnvOutDir   = "KNOTSCAN_OUT_DIR"
)

// Resolve merges the configuration sources for a parsed command line.
func Resolve(opts cli.Options) (Settings, error) {
	file := DefaultFile()
	if opts.ConfigPath != "" {
		loaded, err := Load(opts.ConfigPath)
		if err != nil {
			return Settings{}, err
		}
		file = loaded
	}
	pc, err := file.Predict()
	if err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", opts.ConfigPath, err)
	}

	s := Settings{
		Predict:   pc,
		Window:    file.Window,
		Stride:    file.Stride,
		MinLength: file.MinLength,
		ChartDPI:  file.ChartDPI,
		Threads:   opts.Threads,
		Output:    opts.Output,
		Header:    opts.Header,
		Rank:      opts.Rank,
		OutDir:    opts.OutDir,
		Charts:    opts.Charts,
		DBPath:    opts.DBPath,
		LogLevel:  opts.LogLevel,
		Quiet:     opts.Quiet,
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	if v := os.Getenv(EnvLogLevel); v != "" && !opts.Explicit["log-level"] {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvOutDir); v != "" && !opts.Explicit["out-dir"] {
		s.OutDir = v
	}

	if opts.Explicit["window"] {
		s.Window = opts.WindowSize
	}
	if opts.Explicit["stride"] {
		s.Stride = opts.Stride
	}
	if opts.Explicit["min-length"] {
		s.MinLength = opts.MinLength
	}

	if s.Stride > 0 && s.Window <= 0 {
		return Settings{}, fmt.Errorf("stride %d requires a window size", s.Stride)
	}
	if s.Charts && s.OutDir == "" {
		return Settings{}, fmt.Errorf("charts require an output directory")
	}
	switch s.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return Settings{}, fmt.Errorf("unknown log level %q", s.LogLevel)
	}
	return s, nil
}
