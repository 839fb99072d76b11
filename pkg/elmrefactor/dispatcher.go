package elmrefactor

import (
	"fmt"

	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor/lib"
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// Dispatch implements the dispatcher (C7, spec.md §4.7): a trivial
// switch from a classified change kind to the one refactor function
// that handles it. Dispatch is idempotent in the sense spec.md
// requires: given the same (old, new) pair (the pair Classify already
// consumed to produce kind) it always walks the same snapshot and
// therefore always produces the same edit list.
//
// Per spec.md §4.6's failure semantics, an error from the underlying
// refactor function propagates up so the caller (Run, and through it
// cmd/elm-pair) can log it and apply no edits at all; Dispatch itself
// never partially applies a batch.
func Dispatch(oracle lib.ExportOracle, new *elmtree.Snapshot, kind elmtree.ChangeKind) (*Refactor, error) {
	r := New(new)
	var err error
	switch kind.Tag {
	case elmtree.NoRecognizedChange:
		// Nothing to do; r stays empty.
	case elmtree.AddedModuleQualifier:
		err = Qualify(r, kind.Qualified.Qualifier, kind.Qualified.Name)
	case elmtree.RemovedModuleQualifier:
		err = Unqualify(r, kind.OldQualifier, kind.Qualified.Name)
	case elmtree.ChangedAsClause:
		if kind.EditedAtImport {
			err = ChangedAsClause(r, kind.ImportName, kind.OldAlias, kind.NewAlias)
		} else {
			err = ChangedModuleQualifier(r, kind.ImportName, kind.OldAlias, kind.NewAlias)
		}
	case elmtree.AddedExposingList:
		err = AddedExposingListToImport(r, kind.ExposingImportName)
	case elmtree.RemovedExposingList:
		// The names that used to be exposed are no longer queryable
		// from new (the list is gone); the classifier is responsible
		// for having captured them before this point. Spec.md's own
		// design leaves this as a best-effort pass over current
		// unqualified uses of the import's remaining qualifier.
		err = RemovedExposingListFromImport(r, kind.ExposingImportName, kind.ExposingRemoved)
	case elmtree.AddedConstructorsToExposingList:
		err = AddedConstructorsToExposingList(r, oracle, kind.ConstructorsImportName, kind.ConstructorsTypeName)
	case elmtree.RemovedConstructorsFromExposingList:
		err = RemovedConstructorsFromExposingList(r, oracle, kind.ConstructorsImportName, kind.ConstructorsTypeName)
	case elmtree.ChangedValuesInExposingList:
		err = ChangedValuesInExposingList(r, kind.ExposingImportName, kind.ExposingAdded, kind.ExposingRemoved)
	case elmtree.RenamedDefinition:
		err = Rename(r, kind.DefinitionPos, kind.OldName, kind.NewName)
	case elmtree.TypedUnimportedQualifiedValue:
		err = TypedUnimportedQualifiedValue(r, oracle, kind.NewImportNames)
	default:
		err = fmt.Errorf("elmrefactor: unrecognized change kind %v", kind.Tag)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
