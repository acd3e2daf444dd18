package common

import "testing"

func TestWindowIDRoundTrip(t *testing.T) {
	id := WindowID("chr1", 300, 550)
	if id != "chr1:300-550" {
		t.Fatalf("WindowID = %q", id)
	}
	base, start, end, ok := SplitWindowSuffix(id)
	if !ok || base != "chr1" || start != 300 || end != 550 {
		t.Fatalf("split %q = %q,%d,%d,%v", id, base, start, end, ok)
	}
}

func TestSplitWindowSuffix(t *testing.T) {
	cases := []struct {
		id    string
		base  string
		start int
		end   int
		ok    bool
	}{
		{"chr1:0-250", "chr1", 0, 250, true},
		// Colons in the base are fine; only the last one counts.
		{"lcl:chr2:250-500", "lcl:chr2", 250, 500, true},
		{"plain", "plain", 0, 0, false},
		{"trailing:", "trailing:", 0, 0, false},
		{"nodash:123", "nodash:123", 0, 0, false},
		{"alpha:a-b", "alpha:a-b", 0, 0, false},
		{"inverted:500-250", "inverted:500-250", 0, 0, false},
		{"empty:-250", "empty:-250", 0, 0, false},
	}
	for _, tc := range cases {
		base, start, end, ok := SplitWindowSuffix(tc.id)
		if base != tc.base || start != tc.start || end != tc.end || ok != tc.ok {
			t.Errorf("SplitWindowSuffix(%q) = %q,%d,%d,%v want %q,%d,%d,%v",
				tc.id, base, start, end, ok, tc.base, tc.start, tc.end, tc.ok)
		}
	}
}
