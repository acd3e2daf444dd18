// core/seq/seq.go
package seq

import "fmt"

// Record is one input sequence: an identifier unique within a run plus the
// raw nucleotide bytes. Records are read-only once handed to the analyzers.
type Record struct {
	ID  string
	Seq []byte
}

// InvalidSequenceError reports an empty sequence or a byte outside {A,C,G,T}.
type InvalidSequenceError struct {
	ID   string
	Pos  int  // 0-based position of the offending byte; -1 for empty input
	Base byte // offending byte; 0 for empty input
}

func (e *InvalidSequenceError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("sequence %q: empty", e.ID)
	}
	return fmt.Sprintf("sequence %q: invalid base %q at %d; allowed: A C G T", e.ID, e.Base, e.Pos+1)
}

// Strict Watson-Crick complement; zero marks a disallowed base.
var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
}

// Normalize removes whitespace and quotes and uppercases bases.
func Normalize(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n', '\'', '"':
			continue
		}
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		out = append(out, b)
	}
	return out
}

// Validate rejects empty input and any byte outside {A,C,G,T}. Callers are
// expected to Normalize first; lowercase bases here are a validation error.
func Validate(id string, s []byte) error {
	if len(s) == 0 {
		return &InvalidSequenceError{ID: id, Pos: -1}
	}
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return &InvalidSequenceError{ID: id, Pos: i, Base: s[i]}
		}
	}
	return nil
}

// RevComp returns the reverse complement. Bytes outside {A,C,G,T} map to 'N'.
func RevComp(s []byte) []byte {
	n := len(s)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[s[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

// Complementary reports whether a and b form a Watson-Crick pair.
func Complementary(a, b byte) bool {
	c := complement[a]
	return c != 0 && c == b
}
