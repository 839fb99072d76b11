// Package indent implements an io.Writer that prefixes every line
// written through it. pkg/simulate's golden.go is the only caller:
// ErrMismatch.Error renders a scenario's expected and actual output
// each behind a "| " prefix so a multi-line mismatch reads as two
// clearly delimited blocks instead of running together.
package indent

import (
	"bytes"
	"io"
)

// String returns in with prefix inserted at the start of every line.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}

// Bytes is the []byte equivalent of String.
func Bytes(prefix, in []byte) []byte {
	if len(in) == 0 {
		return nil
	}
	var buf bytes.Buffer
	NewWriter(&buf, string(prefix)).Write(in)
	return buf.Bytes()
}

// Writer wraps another io.Writer, inserting prefix before the first
// byte written after every newline (and before the very first byte
// written overall).
type Writer struct {
	w      io.Writer
	prefix []byte
	atBOL  bool
}

// NewWriter returns a Writer that indents whatever is written through
// it with prefix before handing it to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atBOL: true}
}

// prefixSpan records where, within a single Write call's assembled
// output, an inserted prefix sits -- needed below to tell a short
// write's byte count apart from the caller's own data.
type prefixSpan struct{ start, end int }

// Write indents data a line at a time and writes the result to w in a
// single underlying Write call, then maps however many bytes the
// underlying writer actually accepted back to how many bytes of data
// that corresponds to -- prefix bytes a short write stopped partway
// through don't count against the caller's data.
func (w *Writer) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	var spans []prefixSpan
	rest := data
	for len(rest) > 0 {
		if w.atBOL && len(w.prefix) > 0 {
			spans = append(spans, prefixSpan{buf.Len(), buf.Len() + len(w.prefix)})
			buf.Write(w.prefix)
		}
		w.atBOL = false
		var chunk []byte
		if i := bytes.IndexByte(rest, '\n'); i < 0 {
			chunk, rest = rest, nil
		} else {
			chunk, rest = rest[:i+1], rest[i+1:]
			w.atBOL = true
		}
		buf.Write(chunk)
	}

	full := buf.Bytes()
	n, err := w.w.Write(full)
	switch {
	case n > len(full):
		n = len(full)
	case n < 0:
		n = 0
	}
	if err == nil && n < len(full) {
		err = io.ErrShortWrite
	}

	prefixBytes := 0
	for _, s := range spans {
		if n <= s.start {
			continue
		}
		end := s.end
		if end > n {
			end = n
		}
		prefixBytes += end - s.start
	}
	dataN := n - prefixBytes
	if dataN > len(data) {
		dataN = len(data)
	}
	if dataN < 0 {
		dataN = 0
	}
	return dataN, err
}
