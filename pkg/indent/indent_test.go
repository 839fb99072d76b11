package indent

import (
	"bytes"
	"errors"
	"testing"
)

// tests exercises indent with the "| " prefix golden.go's
// ErrMismatch.Error actually uses, and inputs shaped like the
// single-line and multi-line scenario text it renders.
var tests = []struct {
	prefix, in, out string
}{
	{
		"", "", "",
	}, {
		"| ", "", "",
	}, {
		"", "main = 1\nmain = 1", "main = 1\nmain = 1",
	}, {
		"| ", "x", "| x",
	}, {
		"| ", "\n", "| \n",
	}, {
		"| ", "\n\n", "| \n| \n",
	}, {
		"| ", "main = 1\n", "| main = 1\n",
	}, {
		"| ", "\nmain = 1", "| \n| main = 1",
	}, {
		"| ", "got\nwords\n", "| got\n| words\n",
	}, {
		"| ", "\nempty\nfirst\n", "| \n| empty\n| first\n",
	}, {
		"| ", "empty\nlast\n\n", "| empty\n| last\n| \n",
	}, {
		"| ", "empty\n\nmiddle\n", "| empty\n| \n| middle\n",
	},
}

func TestIndent(t *testing.T) {
	for x, tt := range tests {
		out := String(tt.prefix, tt.in)
		if out != tt.out {
			t.Errorf("#%d: got %q, want %q", x, out, tt.out)
		}
		bout := string(Bytes([]byte(tt.prefix), []byte(tt.in)))
		if bout != out {
			t.Errorf("#%d: Bytes got %q\n String got %q", x, bout, out)
		}
	}
}

func TestWriter(t *testing.T) {
Test:
	for x, tt := range tests {
		for size := 1; size < 64; size <<= 1 {
			var b bytes.Buffer
			w := NewWriter(&b, tt.prefix)
			data := []byte(tt.in)
			for len(data) > size {
				if _, err := w.Write(data[:size]); err != nil {
					t.Errorf("#%d: %v", x, err)
					continue Test
				}
				data = data[size:]
			}
			if _, err := w.Write(data); err != nil {
				t.Errorf("#%d/%d: %v", x, size, err)
				continue Test
			}

			out := b.String()
			if out != tt.out {
				t.Errorf("#%d/%d: got %q, want %q", x, size, out, tt.out)
			}
		}
	}
}

func TestWrittenSize(t *testing.T) {
	for x, tt := range tests {
		var b bytes.Buffer
		w := NewWriter(&b, tt.prefix)
		data := []byte(tt.in)
		if n, _ := w.Write(data); n != len(data) {
			t.Errorf("#%d: got %d, want %d", x, n, len(data))
		}
	}
}

// TestWrittenSizeWithError pins, for every underlying-writer capacity
// from 0 to two bytes past the full assembled-output length (14 bytes,
// "| got\n| words\n"), exactly how many bytes
// of the caller's own two-line scenario text ("got\nwords\n") a short
// underlying write should be reported as having consumed once the "| "
// prefix bytes it partially or fully wrote are subtracted back out.
func TestWrittenSizeWithError(t *testing.T) {
	table := []struct {
		prefix   string
		input    string
		underlay int
		expected int
	}{
		{"| ", "got\nwords\n", 0, 0},
		{"| ", "got\nwords\n", 1, 0},   // |
		{"| ", "got\nwords\n", 2, 0},   // (space)
		{"| ", "got\nwords\n", 3, 1},   // g
		{"| ", "got\nwords\n", 4, 2},   // o
		{"| ", "got\nwords\n", 5, 3},   // t
		{"| ", "got\nwords\n", 6, 4},   // \n
		{"| ", "got\nwords\n", 7, 4},   // |
		{"| ", "got\nwords\n", 8, 4},   // (space)
		{"| ", "got\nwords\n", 9, 5},   // w
		{"| ", "got\nwords\n", 10, 6},  // o
		{"| ", "got\nwords\n", 11, 7},  // r
		{"| ", "got\nwords\n", 12, 8},  // d
		{"| ", "got\nwords\n", 13, 9},  // s
		{"| ", "got\nwords\n", 14, 10}, // \n
		{"| ", "got\nwords\n", 15, 10}, // capacity past end of output
		{"| ", "got\nwords\n", 16, 10}, // capacity past end of output
	}

	for _, d := range table {
		uw := errorWriter{d.underlay}
		w := NewWriter(uw, d.prefix)
		data := []byte(d.input)
		if n, _ := w.Write(data); n != d.expected {
			t.Errorf("underlay: %d, got %d, want %d", d.underlay, n, d.expected)
		}
	}
}

type errorWriter struct {
	ret int
}

func (w errorWriter) Write(buf []byte) (int, error) {
	return w.ret, errors.New("error")
}
