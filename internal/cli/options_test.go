// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"testing"
)

func newFS() *flag.FlagSet { return NewFlagSet("test") }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestSequencesRepeatable(t *testing.T) {
	o := mustParse(t, "--sequences", "ref.fa", "-s", "extra.fa.gz")
	if len(o.SeqFiles) != 2 || o.SeqFiles[0] != "ref.fa" || o.SeqFiles[1] != "extra.fa.gz" {
		t.Errorf("bad sequences parse %+v", o.SeqFiles)
	}
	if !o.Header || o.Output != "text" {
		t.Errorf("defaults wrong: %+v", o)
	}
}

func TestPositionalSequences(t *testing.T) {
	o := mustParse(t, "--threads", "2", "ref.fa", "-")
	if len(o.SeqFiles) != 2 || o.SeqFiles[0] != "ref.fa" || o.SeqFiles[1] != "-" {
		t.Errorf("positionals not merged: %+v", o.SeqFiles)
	}
	if o.Threads != 2 {
		t.Errorf("threads = %d", o.Threads)
	}
}

func TestExplicitTracksCanonicalNames(t *testing.T) {
	o := mustParse(t, "-t", "4", "-o", "jsonl", "ref.fa")
	if !o.Explicit["threads"] || !o.Explicit["output"] {
		t.Errorf("aliases not canonicalized: %+v", o.Explicit)
	}
	if o.Explicit["window"] {
		t.Errorf("unset flag marked explicit")
	}
}

func TestErrorNoSequences(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--threads", "2"}); err == nil {
		t.Fatal("expected error when sequences missing")
	}
}

func TestErrorBadOutput(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--output", "xml", "ref.fa"}); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestErrorBadLogLevel(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--log-level", "loud", "ref.fa"}); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestHelpRequested(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want flag.ErrHelp, got %v", err)
	}
}

func TestVersionSkipsValidation(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"-V"})
	if err != nil {
		t.Fatalf("version parse: %v", err)
	}
	if !o.Version {
		t.Fatal("version flag not set")
	}
}

func TestWindowAndStride(t *testing.T) {
	o := mustParse(t, "--window", "250", "--stride", "50", "--min-length", "100", "ref.fa")
	if o.WindowSize != 250 || o.Stride != 50 || o.MinLength != 100 {
		t.Errorf("analysis knobs wrong: %+v", o)
	}
}
