package elmtree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jwoudenberg/elm-pair/pkg/names"
)

func mustSnapshot(t *testing.T, src string) *Snapshot {
	t.Helper()
	s, err := FromBytes(Buffer{EditorID: 1, BufferID: 1}, src)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return s
}

func TestImports(t *testing.T) {
	src := "module Main exposing (main)\n\nimport Json.Decode as JD exposing (string)\nimport List\n\nmain = 1\n"
	s := mustSnapshot(t, src)
	imports := Imports(s)
	if len(imports) != 2 {
		t.Fatalf("got %d imports, want 2", len(imports))
	}
	if imports[0].UnaliasedName() != "Json.Decode" {
		t.Errorf("imports[0].UnaliasedName() = %q", imports[0].UnaliasedName())
	}
	if imports[0].AliasedName() != "JD" {
		t.Errorf("imports[0].AliasedName() = %q", imports[0].AliasedName())
	}
	if !imports[0].HasExposingList() {
		t.Errorf("imports[0] should have an exposing list")
	}
	if imports[1].UnaliasedName() != "List" || imports[1].HasExposingList() {
		t.Errorf("imports[1] = %+v", imports[1])
	}
}

func TestModuleDeclaration(t *testing.T) {
	s := mustSnapshot(t, "module Main exposing (main)\n\nmain = 1\n")
	name, _, ok := ModuleDeclaration(s)
	if !ok || name != "Main" {
		t.Fatalf("ModuleDeclaration = %q, %v", name, ok)
	}
}

func TestApplyNonOverlapping(t *testing.T) {
	s := mustSnapshot(t, "main = 1\n")
	next, err := s.Apply([]Edit{{Range: ByteRange{Start: 7, End: 8}, Replacement: "2"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := next.Bytes.String(); got != "main = 2\n" {
		t.Fatalf("Apply result = %q", got)
	}
	if next.Revision != s.Revision+1 {
		t.Errorf("Revision = %d, want %d", next.Revision, s.Revision+1)
	}
}

func TestApplyOverlappingRejected(t *testing.T) {
	s := mustSnapshot(t, "main = 1\n")
	_, err := s.Apply([]Edit{
		{Range: ByteRange{Start: 0, End: 4}, Replacement: "x"},
		{Range: ByteRange{Start: 2, End: 6}, Replacement: "y"},
	})
	if err == nil {
		t.Fatal("expected ErrOverlappingEdits")
	}
	if _, ok := err.(*ErrOverlappingEdits); !ok {
		t.Fatalf("err = %T, want *ErrOverlappingEdits", err)
	}
}

func TestClassifyChangedAsClauseAtImport(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode as JD\n\nmain = JD.string\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode as D\n\nmain = JD.string\n")
	ck := Classify(old, new)
	if ck.Tag != ChangedAsClause {
		t.Fatalf("Tag = %v, want ChangedAsClause", ck.Tag)
	}
	if ck.OldAlias != "JD" || ck.NewAlias != "D" || !ck.EditedAtImport {
		t.Fatalf("ck = %+v", ck)
	}
}

func TestClassifyChangedAsClauseAtUseSite(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode as JD\n\nmain = JD.string\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode as JD\n\nmain = D.string\n")
	ck := Classify(old, new)
	if ck.Tag != ChangedAsClause {
		t.Fatalf("Tag = %v, want ChangedAsClause", ck.Tag)
	}
	if ck.OldAlias != "JD" || ck.NewAlias != "D" || ck.EditedAtImport {
		t.Fatalf("ck = %+v", ck)
	}
}

func TestClassifyAddedExposingList(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nimport List\n\nmain = 1\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nimport List exposing (map)\n\nmain = 1\n")
	ck := Classify(old, new)
	if ck.Tag != AddedExposingList || ck.ExposingImportName != "List" {
		t.Fatalf("ck = %+v", ck)
	}
}

func TestClassifyTypedUnimportedQualifiedValue(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nmain = 1\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nmain = Json.Decode.string\n")
	ck := Classify(old, new)
	if ck.Tag != TypedUnimportedQualifiedValue {
		t.Fatalf("Tag = %v, want TypedUnimportedQualifiedValue", ck.Tag)
	}
	if len(ck.NewImportNames) != 1 || ck.NewImportNames[0] != "Json.Decode" {
		t.Fatalf("NewImportNames = %v", ck.NewImportNames)
	}
}

func TestClassifyChangedValuesInExposingList(t *testing.T) {
	old := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode exposing (string, int)\n\nmain = 1\n")
	new := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode exposing (string, float)\n\nmain = 1\n")
	ck := Classify(old, new)
	if ck.Tag != ChangedValuesInExposingList {
		t.Fatalf("Tag = %v, want ChangedValuesInExposingList", ck.Tag)
	}

	wantAdded := []names.Name{names.NewName("float", names.Value)}
	wantRemoved := []names.Name{names.NewName("int", names.Value)}
	if diff := cmp.Diff(wantAdded, ck.ExposingAdded); diff != "" {
		t.Errorf("ExposingAdded mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRemoved, ck.ExposingRemoved); diff != "" {
		t.Errorf("ExposingRemoved mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExposingList(t *testing.T) {
	s := mustSnapshot(t, "module Main exposing (main)\n\nimport Json.Decode exposing (Value, Decoder(..), string)\n\nmain = 1\n")
	im, ok := FindImport(s, "Json.Decode")
	if !ok {
		t.Fatal("expected Json.Decode import")
	}
	items := parseExposingList(s, im.ExposingNode)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(items), items)
	}
	decoder, ok := exposedItemByName(items, "Decoder")
	if !ok || !decoder.Open {
		t.Fatalf("Decoder item = %+v, ok=%v", decoder, ok)
	}
	value, ok := exposedItemByName(items, "string")
	if !ok || value.Name.Kind != names.Value {
		t.Fatalf("string item = %+v, ok=%v", value, ok)
	}
}

func TestScopesFileAndLet(t *testing.T) {
	src := "module Main exposing (main)\n\nmain =\n    let\n        x = 1\n    in\n    x\n"
	s := mustSnapshot(t, src)
	scopes := Scopes(s)
	if len(scopes) < 2 {
		t.Fatalf("got %d scopes, want at least 2 (file + let)", len(scopes))
	}
}
