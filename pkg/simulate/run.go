package simulate

import (
	"fmt"
	"strings"

	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor"
	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor/lib"
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// fakeOracle answers lib.ExportOracle straight from a scenario's
// "-- oracle" section, grouping entries by module the way
// pkg/knowledgebase.KnowledgeBase does internally.
type fakeOracle map[string][]names.ExportedName

func newFakeOracle(entries []OracleEntry) fakeOracle {
	o := make(fakeOracle)
	for _, e := range entries {
		o[e.Module] = append(o[e.Module], e.Name)
	}
	return o
}

func (o fakeOracle) Exports(moduleName string) ([]names.ExportedName, bool) {
	exported, ok := o[moduleName]
	return exported, ok
}

var _ lib.ExportOracle = fakeOracle(nil)

// byteOffset converts a 1-indexed line and 0-indexed byte column
// within that line to an absolute byte offset into src. Scenario edits
// are authored in line:col since that is how a human names a position
// in a seed-test file; everything downstream of this conversion (the
// classifier, the refactor library) works in absolute byte offsets.
func byteOffset(src string, line, col int) int {
	offset := 0
	for i := 1; i < line; i++ {
		idx := strings.IndexByte(src[offset:], '\n')
		if idx < 0 {
			return len(src)
		}
		offset += idx + 1
	}
	return offset + col
}

func toElmtreeEdits(src string, edits []TextEdit) []elmtree.Edit {
	out := make([]elmtree.Edit, len(edits))
	for i, e := range edits {
		out[i] = elmtree.Edit{
			Range: elmtree.ByteRange{
				Start: byteOffset(src, e.StartLine, e.StartCol),
				End:   byteOffset(src, e.EndLine, e.EndCol),
			},
			Replacement: e.Replacement,
		}
	}
	return out
}

// Result is the outcome of driving one scenario end-to-end.
type Result struct {
	Kind elmtree.ChangeKind
	// Text is the golden text the scenario's expected section should
	// hold: either the refactored "new" source, or one of the two
	// fixed sentinel strings spec.md §4.8 names for the no-edits and
	// parse-failure cases.
	Text string
}

const (
	textNoRefactor    = "No refactor for this change.\n"
	invalidCodePrefix = "Refactor produced invalid code:\n"
)

// RunScenario drives s through FromBytes -> Apply(edits) -> Classify ->
// Dispatch -> apply-result, the same pipeline cmd/elm-pair runs for a
// live buffer, and renders the outcome the way spec.md
// §4.8 specifies: a fixed sentinel when the dispatcher produced no
// edits, a fixed sentinel carrying the broken text when reparsing the
// refactored result still leaves parse errors (unless s.KnownBug is
// set, in which case that result is accepted as correct), or the
// refactored source itself.
func RunScenario(s *Scenario) (*Result, error) {
	buffer := elmtree.Buffer{EditorID: 1, BufferID: 1}
	old, err := elmtree.FromBytes(buffer, s.BeforeCode)
	if err != nil {
		return nil, fmt.Errorf("simulate: %s: parsing before-code: %w", s.Path, err)
	}

	new, err := old.Apply(toElmtreeEdits(s.BeforeCode, s.Edits))
	if err != nil {
		return nil, fmt.Errorf("simulate: %s: applying scenario edits: %w", s.Path, err)
	}

	oracle := newFakeOracle(s.Oracle)
	edits, kind, err := elmrefactor.Run(oracle, old, new)
	if err != nil || len(edits) == 0 {
		return &Result{Kind: kind, Text: textNoRefactor}, nil
	}

	refactored, err := new.Apply(edits)
	if err != nil {
		return &Result{Kind: kind, Text: invalidCodePrefix + err.Error() + "\n"}, nil
	}

	text := refactored.Bytes.String()
	if refactored.HasErrors() && !s.KnownBug {
		return &Result{Kind: kind, Text: invalidCodePrefix + text}, nil
	}
	return &Result{Kind: kind, Text: text}, nil
}
