package cli

import (
	"flag"
	"fmt"

	"knotscan/internal/version"
)

// NewFlagSet returns a FlagSet with ContinueOnError and the hand-written
// usage text. Defaults in the text come from the registered flags so the two
// cannot drift apart.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – DNA structural risk scanner\n\n", name)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s [options] --sequences genome.fa[.gz]\n", name)
		fmt.Fprintf(out, "  %s [options] ref*.fa.gz\n", name)
		fmt.Fprintf(out, "  cat seqs.fa | %s [options] -\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -s, --sequences file    FASTA file(s) (repeatable) or '-' for STDIN")
		fmt.Fprintln(out, "  -c, --config file       YAML config with thresholds and weights")

		fmt.Fprintln(out, "\nAnalysis:")
		fmt.Fprintf(out, "      --window int        split records into N-bp windows (0 = whole record) [%s]\n", def("window"))
		fmt.Fprintf(out, "      --stride int        window step in bp (0 = window size) [%s]\n", def("stride"))
		fmt.Fprintf(out, "      --min-length int    skip records shorter than N bp [%s]\n", def("min-length"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int       worker threads (0 = all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string     output format: text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintln(out, "      --no-header         suppress the TSV header line")
		fmt.Fprintln(out, "      --rank              order output by risk level, then score")
		fmt.Fprintf(out, "      --out-dir dir       write results.json and summary.json under dir [%s]\n", def("out-dir"))
		fmt.Fprintln(out, "      --charts            render charts under out-dir/charts (needs --out-dir)")
		fmt.Fprintf(out, "      --db file           append the run to a SQLite database [%s]\n", def("db"))

		fmt.Fprintln(out, "\nMisc:")
		fmt.Fprintf(out, "      --log-level string  debug | info | warn | error [%s]\n", def("log-level"))
		fmt.Fprintln(out, "  -q, --quiet             errors only")
		fmt.Fprintln(out, "  -V, --version           print version and exit")
		fmt.Fprintln(out, "  -h                      show this help")
	}
	return fs
}
