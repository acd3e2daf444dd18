// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"knotscan/internal/app"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEndToEnd(t *testing.T) {
	fa := write(t, "itest.fa", ">balanced\nATGCATGCATGC\n>polyA\nAAAAAAAAAA\n")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--sequences", fa, "--quiet"}, &out, &errBuf)

	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "sequence_id\t") {
		t.Fatalf("missing TSV header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "\tlow") {
		t.Fatalf("balanced sequence should be low risk: %q", lines[1])
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, ">s%02d\nACGTACGTACGTACGTCCCCGGGGAAAA\n", i)
	}
	fa := write(t, "par.fa", sb.String())

	run := func(threads int) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"--sequences", fa,
			"--threads", fmt.Sprint(threads),
			"--output", "json",
			"--quiet",
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(4)

	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
}

func TestWindowModeEndToEnd(t *testing.T) {
	fa := write(t, "win.fa", ">chr\n"+strings.Repeat("ACGT", 15)+"\n")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--sequences", fa,
		"--window", "30", "--stride", "15",
		"--quiet", "--no-header",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 windows for 60 bp at 30/15, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "chr:0-30\t") || !strings.HasPrefix(lines[2], "chr:30-60\t") {
		t.Fatalf("unexpected window ids:\n%s", out.String())
	}
}

func TestPartialFailureKeepsGoing(t *testing.T) {
	fa := write(t, "mixed.fa", ">ok1\nACGTACGTACGT\n>bad\nACGTNNNACGT\n>ok2\nATGCATGCATGC\n")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--sequences", fa, "--quiet", "--no-header"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("bad record should be error-tagged: %q", lines[1])
	}
	if strings.Contains(lines[0], "ERROR") || strings.Contains(lines[2], "ERROR") {
		t.Fatalf("valid records must not be error-tagged:\n%s", out.String())
	}
}
