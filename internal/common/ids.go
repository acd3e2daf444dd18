// internal/common/ids.go
package common

import (
	"strconv"
	"strings"
)

// WindowID builds the derived identifier for a window cut from a parent
// record, "record_id:start-end" with half-open coordinates.
func WindowID(base string, start, end int) string {
	return base + ":" + strconv.Itoa(start) + "-" + strconv.Itoa(end)
}

// SplitWindowSuffix extracts the base ID and the half-open coordinates if
// the input looks like "record_id:123-456". It returns base, start, end, ok.
func SplitWindowSuffix(id string) (string, int, int, bool) {
	colon := strings.LastIndex(id, ":")
	if colon == -1 || colon == len(id)-1 {
		return id, 0, 0, false
	}
	suffix := id[colon+1:]
	dash := strings.IndexByte(suffix, '-')
	if dash <= 0 {
		return id, 0, 0, false
	}
	start, err := strconv.Atoi(suffix[:dash])
	if err != nil || start < 0 {
		return id, 0, 0, false
	}
	end, err := strconv.Atoi(suffix[dash+1:])
	if err != nil || end <= start {
		return id, 0, 0, false
	}
	return id[:colon], start, end, true
}
