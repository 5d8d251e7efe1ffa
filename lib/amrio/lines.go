package amrio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// lineReader is the tokenizer shared by both file grammars. Every line's
// meaning depends on the parse position reached by the lines before it, so
// the reader only ever moves forward, one line at a time, and stamps each
// failure with the file name and line number it happened on.
type lineReader struct {
	name string
	scan *bufio.Scanner
	line int
}

func newLineReader(name string, r io.Reader) *lineReader {
	return &lineReader{name: name, scan: bufio.NewScanner(r)}
}

// errf wraps ErrMalformedHeader with the current file position.
func (r *lineReader) errf(format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	return fmt.Errorf("%w: %s line %d: %s", ErrMalformedHeader,
		r.name, r.line, msg)
}

// text returns the next line with the trailing newline stripped. Running
// out of lines mid-grammar is a malformed file, not a clean EOF.
func (r *lineReader) text() (string, error) {
	if !r.scan.Scan() {
		if err := r.scan.Err(); err != nil {
			return "", fmt.Errorf("error while reading %s: %w", r.name, err)
		}
		r.line++
		return "", r.errf("the file ended before the grammar was complete")
	}
	r.line++
	return r.scan.Text(), nil
}

// intLine reads a line containing a single integer.
func (r *lineReader) intLine() (int, error) {
	s, err := r.text()
	if err != nil { return 0, err }
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, r.errf("expected a single integer, got '%s'", s)
	}
	return n, nil
}

// floatLine reads a line containing a single float.
func (r *lineReader) floatLine() (float64, error) {
	s, err := r.text()
	if err != nil { return 0, err }
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, r.errf("expected a single float, got '%s'", s)
	}
	return x, nil
}

// intFields reads a line of whitespace-separated integers. An empty line is
// a valid empty list: single-level plotfiles have no refinement factors.
func (r *lineReader) intFields() ([]int, error) {
	s, err := r.text()
	if err != nil { return nil, err }
	toks := strings.Fields(s)
	ns := make([]int, len(toks))
	for i := range toks {
		if ns[i], err = strconv.Atoi(toks[i]); err != nil {
			return nil, r.errf("expected integers, got '%s'", s)
		}
	}
	return ns, nil
}

// floatFields reads a line that must contain exactly n floats.
func (r *lineReader) floatFields(n int) ([]float64, error) {
	s, err := r.text()
	if err != nil { return nil, err }
	toks := strings.Fields(s)
	if len(toks) != n {
		return nil, r.errf("expected %d floats, got %d tokens in '%s'",
			n, len(toks), s)
	}
	xs := make([]float64, n)
	for i := range toks {
		if xs[i], err = strconv.ParseFloat(toks[i], 64); err != nil {
			return nil, r.errf("expected floats, got '%s'", s)
		}
	}
	return xs, nil
}

// parseIntTuple parses a parenthesised comma-separated tuple like
// "(0,0,0)", tolerating extra wrapping parentheses from the surrounding
// grammar, e.g. "((0,0,0)".
func parseIntTuple(tok string) ([]int, error) {
	parts := strings.Split(strings.Trim(tok, "()"), ",")
	ns := make([]int, len(parts))
	for i := range parts {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, fmt.Errorf("'%s' is not an integer tuple", tok)
		}
		ns[i] = n
	}
	return ns, nil
}
