package rope

import "testing"

func TestFromStringAndString(t *testing.T) {
	for _, s := range []string{"", "hello", strRepeat("ab", 2000)} {
		r := FromString(s)
		if got := r.String(); got != s {
			t.Errorf("FromString(%q).String() = %q", truncate(s), truncate(got))
		}
		if r.Len() != len(s) {
			t.Errorf("FromString(%q).Len() = %d, want %d", truncate(s), r.Len(), len(s))
		}
	}
}

func TestSlice(t *testing.T) {
	r := FromString("hello world")
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 5, "hello"},
		{6, 11, "world"},
		{0, 0, ""},
		{0, 11, "hello world"},
		{4, 7, "o w"},
	}
	for _, tt := range tests {
		if got := r.Slice(tt.start, tt.end); got != tt.want {
			t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSliceAcrossLeaves(t *testing.T) {
	s := strRepeat("x", 3000) + "MARKER" + strRepeat("y", 3000)
	r := FromString(s)
	got := r.Slice(2999, 3006)
	want := "xMARKER"
	if got != want {
		t.Errorf("Slice across leaf boundary = %q, want %q", got, want)
	}
}

func TestSplice(t *testing.T) {
	r := FromString("f xs = map f xs")
	spliced := r.Splice(7, 10, "List.map")
	want := "f xs = List.map f xs"
	if got := spliced.String(); got != want {
		t.Errorf("Splice = %q, want %q", got, want)
	}
	// The original rope is untouched.
	if r.String() != "f xs = map f xs" {
		t.Errorf("Splice mutated receiver: %q", r.String())
	}
}

func TestSpliceInsertAndDelete(t *testing.T) {
	r := FromString("ab")
	ins := r.Splice(1, 1, "X")
	if got := ins.String(); got != "aXb" {
		t.Errorf("insert Splice = %q, want aXb", got)
	}
	del := r.Splice(0, 1, "")
	if got := del.String(); got != "b" {
		t.Errorf("delete Splice = %q, want b", got)
	}
}

func TestEqual(t *testing.T) {
	a := FromString("hello").Splice(5, 5, " world")
	b := FromString("hello world")
	if !a.Equal(b) {
		t.Errorf("expected %q to equal %q", a.String(), b.String())
	}
	if a.Equal(FromString("hello there")) {
		t.Errorf("did not expect equality")
	}
}

func TestByteAt(t *testing.T) {
	r := FromString(strRepeat("a", 2000) + "Z")
	if got := r.ByteAt(2000); got != 'Z' {
		t.Errorf("ByteAt(2000) = %q, want Z", got)
	}
}

func strRepeat(s string, n int) string {
	b := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		b = append(b, s...)
	}
	return string(b)
}

func truncate(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
