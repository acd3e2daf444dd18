// internal/pipeline/analyzer.go
package pipeline

import (
	"knotscan-core/predict"
	"knotscan-core/seq"
)

// Analyzer is the minimal capability the pipeline needs.
// Any analyzer (including fakes in tests) can satisfy this.
type Analyzer interface {
	Analyze(rec seq.Record) predict.Result
}
