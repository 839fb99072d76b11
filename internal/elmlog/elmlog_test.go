package elmlog

import "testing"

func TestNewRespectsDebugLevel(t *testing.T) {
	info, err := New(false)
	if err != nil {
		t.Fatalf("New(false): %v", err)
	}
	if info.Core().Enabled(-1) {
		t.Error("non-debug logger should not have debug level enabled")
	}

	debug, err := New(true)
	if err != nil {
		t.Fatalf("New(true): %v", err)
	}
	if !debug.Core().Enabled(-1) {
		t.Error("debug logger should have debug level enabled")
	}
}

func TestPrettyProducesNonEmptyField(t *testing.T) {
	f := Pretty("kind", struct{ A, B int }{A: 1, B: 2})
	if f.Key != "kind" {
		t.Fatalf("field key = %q", f.Key)
	}
	if f.String == "" {
		t.Fatal("expected non-empty pretty-printed string")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info("this should be discarded silently")
}
