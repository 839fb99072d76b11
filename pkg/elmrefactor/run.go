package elmrefactor

import (
	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor/lib"
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// Run is the end-to-end convenience cmd/elm-pair's buffer handler and
// the simulation harness (pkg/simulate) both call: classify the
// (old, new) pair, dispatch to the matching refactor, and return the
// validated, ordered edit list ready to apply to new. Per spec.md
// §4.6's failure semantics, any error means "no edits" -- never a
// partial batch -- so Run itself returns a nil slice on error rather
// than whatever a partially built Refactor accumulated.
func Run(oracle lib.ExportOracle, old, new *elmtree.Snapshot) ([]elmtree.Edit, elmtree.ChangeKind, error) {
	kind := elmtree.Classify(old, new)
	r, err := Dispatch(oracle, new, kind)
	if err != nil {
		return nil, kind, err
	}
	edits, err := r.Edits()
	if err != nil {
		return nil, kind, err
	}
	return edits, kind, nil
}
