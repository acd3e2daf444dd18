// internal/common/sort.go
package common

import (
	"sort"

	"knotscan-core/predict"
)

// LessRanked defines the --rank order: analyzed results before failures,
// then level descending, score descending, and sequence ID ascending so ties
// are stable across runs.
func LessRanked(a, b predict.Result) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return a.Err == nil
	}
	if a.Risk.Level != b.Risk.Level {
		return a.Risk.Level > b.Risk.Level
	}
	if a.Risk.Score != b.Risk.Score {
		return a.Risk.Score > b.Risk.Score
	}
	return a.ID < b.ID
}

// RankResults sorts rs in place into --rank order.
func RankResults(rs []predict.Result) {
	sort.Slice(rs, func(i, j int) bool { return LessRanked(rs[i], rs[j]) })
}
