// internal/app/artifacts.go
package app

import (
	"os"
	"path/filepath"

	"knotscan-core/predict"

	"knotscan/internal/output"
	"knotscan/internal/report"
)

// writeArtifacts persists results.json and summary.json under dir and
// reports the paths it wrote.
func writeArtifacts(dir string, results []predict.Result, rep report.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string

	resultsPath := filepath.Join(dir, "results.json")
	if err := writeJSONFile(resultsPath, output.ToAPIResults(results)); err != nil {
		return written, err
	}
	written = append(written, resultsPath)

	summaryPath := filepath.Join(dir, "summary.json")
	if err := writeJSONFile(summaryPath, rep.Summary()); err != nil {
		return written, err
	}
	written = append(written, summaryPath)
	return written, nil
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.EncodePretty(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
