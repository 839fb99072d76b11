package elmrefactor

import (
	"testing"

	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/names"
)

type fakeOracle map[string][]names.ExportedName

func (f fakeOracle) Exports(moduleName string) ([]names.ExportedName, bool) {
	e, ok := f[moduleName]
	return e, ok
}

func mustSnapshot(t *testing.T, src string) *elmtree.Snapshot {
	t.Helper()
	s, err := elmtree.FromBytes(elmtree.Buffer{EditorID: 1, BufferID: 1}, src)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return s
}

func apply(t *testing.T, s *elmtree.Snapshot, edits []elmtree.Edit) *elmtree.Snapshot {
	t.Helper()
	next, err := s.Apply(edits)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return next
}

func TestRunQualifyPropagatesAndCleansExposingList(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode exposing (string)\n\nmain =\n    string\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode exposing (string)\n\nmain =\n    Json.Decode.string\n")

	edits, kind, err := Run(fakeOracle{}, old, new)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if kind.Tag != elmtree.AddedModuleQualifier {
		t.Fatalf("Tag = %v", kind.Tag)
	}
	if len(edits) == 0 {
		t.Fatalf("expected edits removing exposing list entry, got none")
	}
	result := apply(t, new, edits)
	got := result.Bytes.String()
	if contains(got, "exposing (string)") {
		t.Errorf("expected exposing list entry removed, got %q", got)
	}
}

func TestRunChangedAsClauseAtImport(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode as JD\n\nmain = JD.string\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode as D\n\nmain = JD.string\n")

	edits, kind, err := Run(fakeOracle{}, old, new)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if kind.Tag != elmtree.ChangedAsClause {
		t.Fatalf("Tag = %v", kind.Tag)
	}
	result := apply(t, new, edits)
	if got := result.Bytes.String(); !contains(got, "D.string") || contains(got, "JD.string") {
		t.Errorf("result = %q", got)
	}
}

func TestRunTypedUnimportedQualifiedValue(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nmain = 1\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nmain = Json.Decode.string\n")
	oracle := fakeOracle{"Json.Decode": nil}

	edits, kind, err := Run(oracle, old, new)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if kind.Tag != elmtree.TypedUnimportedQualifiedValue {
		t.Fatalf("Tag = %v", kind.Tag)
	}
	result := apply(t, new, edits)
	if got := result.Bytes.String(); !contains(got, "import Json.Decode\n") {
		t.Errorf("result = %q", got)
	}
}

func TestRunNoRecognizedChange(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nmain = 1\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nmain = 1\n")
	edits, kind, err := Run(fakeOracle{}, old, new)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if kind.Tag != elmtree.NoRecognizedChange || len(edits) != 0 {
		t.Fatalf("kind=%v edits=%v", kind.Tag, edits)
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
