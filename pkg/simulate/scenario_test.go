package simulate

import "testing"

func TestParseScenarioBasic(t *testing.T) {
	src := "-- before-code\n" +
		"f xs = map f xs\n" +
		"-- edits\n" +
		"1:7-1:10 \"List.map\"\n" +
		"-- === expected output below ===\n" +
		"-- f xs = List.map f xs\n"

	s, err := ParseScenario("mem", src)
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	if s.BeforeCode != "f xs = map f xs\n" {
		t.Fatalf("BeforeCode = %q", s.BeforeCode)
	}
	if len(s.Edits) != 1 {
		t.Fatalf("Edits = %v", s.Edits)
	}
	e := s.Edits[0]
	if e.StartLine != 1 || e.StartCol != 7 || e.EndLine != 1 || e.EndCol != 10 || e.Replacement != "List.map" {
		t.Fatalf("edit = %+v", e)
	}
	if s.Bootstrap {
		t.Fatal("expected Bootstrap = false")
	}
	if s.Expected != "f xs = List.map f xs\n" {
		t.Fatalf("Expected = %q", s.Expected)
	}
}

func TestParseScenarioBootstrapsWhenSeparatorMissing(t *testing.T) {
	src := "-- before-code\n" +
		"main = 1\n" +
		"-- edits\n"

	s, err := ParseScenario("mem", src)
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	if !s.Bootstrap {
		t.Fatal("expected Bootstrap = true")
	}
	if s.Expected != "" {
		t.Fatalf("Expected = %q, want empty", s.Expected)
	}
}

func TestParseScenarioOracleSection(t *testing.T) {
	src := "-- before-code\n" +
		"main = 1\n" +
		"-- edits\n" +
		"-- oracle\n" +
		"Set empty value\n" +
		"Set Item type A B\n" +
		"-- === expected output below ===\n" +
		"-- main = 1\n"

	s, err := ParseScenario("mem", src)
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	if len(s.Oracle) != 2 {
		t.Fatalf("Oracle = %+v", s.Oracle)
	}
	if s.Oracle[1].Name.Constructors[0].Text != "A" || s.Oracle[1].Name.Constructors[1].Text != "B" {
		t.Fatalf("Oracle[1] = %+v", s.Oracle[1])
	}
}

func TestByteOffset(t *testing.T) {
	src := "abc\ndef\nghi"
	if got := byteOffset(src, 2, 1); got != 5 {
		t.Fatalf("byteOffset = %d, want 5", got)
	}
}
