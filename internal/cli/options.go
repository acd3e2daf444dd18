// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"knotscan/internal/cliutil"
	"knotscan/internal/output"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles   []string
	ConfigPath string

	// Analysis
	WindowSize int
	Stride     int
	MinLength  int

	// Performance
	Threads int

	// Output
	Output string // text | json | jsonl
	Header bool   // true unless --no-header
	Rank   bool
	OutDir string
	Charts bool
	DBPath string

	// Misc
	LogLevel string
	Quiet    bool
	Version  bool

	// Explicit marks flag names the user actually set, so the config layer
	// can apply flags > env > file > defaults precedence.
	Explicit map[string]bool
}

// sliceValue appends each value to a *[]string (for --sequences/-s).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}
func (s *sliceValue) Set(v string) error { *s.dst = append(*s.dst, v); return nil }

// Parse is the top-level call for CLI parsing.
func Parse(argv []string) (Options, error) { return ParseArgs(NewFlagSet("knotscan"), argv) }

// ParseArgs registers and parses all flags, merges positional sequence files
// (globs expanded), and validates the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	seqVal := &sliceValue{dst: &opt.SeqFiles}
	fs.Var(seqVal, "sequences", "FASTA file(s) (repeatable) or '-'")
	fs.Var(seqVal, "s", "alias of --sequences")
	fs.StringVar(&opt.ConfigPath, "config", "", "YAML config file")
	fs.StringVar(&opt.ConfigPath, "c", "", "alias of --config")

	fs.IntVar(&opt.WindowSize, "window", 0, "split records into N-bp windows (0 = whole record) [0]")
	fs.IntVar(&opt.Stride, "stride", 0, "window step in bp (0 = window size) [0]")
	fs.IntVar(&opt.MinLength, "min-length", 0, "skip records shorter than N bp [0]")

	fs.IntVar(&opt.Threads, "threads", 0, "worker threads (0 = all CPUs) [0]")
	fs.IntVar(&opt.Threads, "t", 0, "alias of --threads")

	fs.StringVar(&opt.Output, "output", output.FormatText, "output format: text | json | jsonl [text]")
	fs.StringVar(&opt.Output, "o", output.FormatText, "alias of --output")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Rank, "rank", false, "order output by risk level, then score [false]")
	fs.StringVar(&opt.OutDir, "out-dir", "", "directory for results.json / summary.json")
	fs.BoolVar(&opt.Charts, "charts", false, "render charts under out-dir/charts [false]")
	fs.StringVar(&opt.DBPath, "db", "", "SQLite database to append the run to")

	fs.StringVar(&opt.LogLevel, "log-level", "", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "errors only [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&opt.Version, "V", false, "alias of --version")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	flagArgs, positionals := cliutil.SplitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}

	opt.Explicit = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.Explicit[canonicalFlag(f.Name)] = true })

	if opt.Version {
		return opt, nil
	}

	opt.Header = !noHeader

	exp, err := cliutil.ExpandGlobs(positionals)
	if err != nil {
		return opt, err
	}
	opt.SeqFiles = append(opt.SeqFiles, exp...)

	return opt, validate(&opt)
}

// canonicalFlag maps single-letter aliases onto their long names so the
// Explicit set has one spelling per option.
func canonicalFlag(name string) string {
	switch name {
	case "s":
		return "sequences"
	case "c":
		return "config"
	case "t":
		return "threads"
	case "o":
		return "output"
	case "q":
		return "quiet"
	case "V":
		return "version"
	}
	return name
}

func validate(opt *Options) error {
	if len(opt.SeqFiles) == 0 {
		return errors.New("at least one sequence file is required (--sequences or positional)")
	}
	if opt.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	if opt.WindowSize < 0 {
		return errors.New("--window must be >= 0")
	}
	if opt.Stride < 0 {
		return errors.New("--stride must be >= 0")
	}
	if opt.MinLength < 0 {
		return errors.New("--min-length must be >= 0")
	}
	switch opt.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q (want text, json, or jsonl)", opt.Output)
	}
	switch opt.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level %q", opt.LogLevel)
	}
	return nil
}
