package elmrefactor

import (
	"fmt"

	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor/lib"
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// AddedExposingListToImport implements added_exposing_list_to_import
// (spec.md §4.6): an import that previously had no exposing list now
// has one naming importName's module; every name in that new list was,
// up to this edit, only reachable qualified, so each one is unqualified
// everywhere else in the buffer.
func AddedExposingListToImport(r *Refactor, importName string) error {
	s := r.Snapshot()
	im, ok := elmtree.FindImport(s, importName)
	if !ok {
		return fmt.Errorf("elmrefactor: added_exposing_list_to_import: import %q not found", importName)
	}
	qualifier := im.AliasedName()
	for _, item := range elmtree.ExposedItems(s, im.ExposingNode) {
		if err := Unqualify(r, qualifier, item.Name); err != nil {
			return err
		}
	}
	return nil
}

// RemovedExposingListFromImport implements
// removed_exposing_list_from_import: the inverse. Every name that used
// to be implicitly available unqualified from importName must now be
// qualified wherever it's used unqualified.
func RemovedExposingListFromImport(r *Refactor, importName string, formerlyExposed []names.Name) error {
	s := r.Snapshot()
	im, ok := elmtree.FindImport(s, importName)
	if !ok {
		return fmt.Errorf("elmrefactor: removed_exposing_list_from_import: import %q not found", importName)
	}
	qualifier := im.AliasedName()
	for _, n := range formerlyExposed {
		if err := Qualify(r, qualifier, n); err != nil {
			return err
		}
	}
	return nil
}

// ChangedValuesInExposingList handles the delta when an existing
// exposing list gains or loses individual entries: added entries are
// unqualified everywhere, removed entries are qualified everywhere.
func ChangedValuesInExposingList(r *Refactor, importName string, added, removed []names.Name) error {
	s := r.Snapshot()
	im, ok := elmtree.FindImport(s, importName)
	if !ok {
		return fmt.Errorf("elmrefactor: changed_values_in_exposing_list: import %q not found", importName)
	}
	qualifier := im.AliasedName()
	for _, n := range added {
		if err := Unqualify(r, qualifier, n); err != nil {
			return err
		}
	}
	for _, n := range removed {
		if err := Qualify(r, qualifier, n); err != nil {
			return err
		}
	}
	return nil
}

// AddedConstructorsToExposingList / RemovedConstructorsFromExposingList
// resolve typeName's constructors via the export oracle and delegate
// to Unqualify/Qualify per constructor, treating each as a Constructor-
// kind Name (spec.md §4.6).
func AddedConstructorsToExposingList(r *Refactor, oracle lib.ExportOracle, importName, typeName string) error {
	return forEachConstructor(r, oracle, importName, typeName, Unqualify)
}

func RemovedConstructorsFromExposingList(r *Refactor, oracle lib.ExportOracle, importName, typeName string) error {
	return forEachConstructor(r, oracle, importName, typeName, Qualify)
}

func forEachConstructor(
	r *Refactor,
	oracle lib.ExportOracle,
	importName, typeName string,
	apply func(r *Refactor, qualifier string, name names.Name) error,
) error {
	s := r.Snapshot()
	im, ok := elmtree.FindImport(s, importName)
	if !ok {
		return fmt.Errorf("elmrefactor: constructors: import %q not found", importName)
	}
	constructors, ok := lib.ConstructorsOfExports(oracle, importName, typeName)
	if !ok {
		// Per spec.md §4.4, an export oracle miss means "nothing to do",
		// not an error.
		return nil
	}
	qualifier := im.AliasedName()
	for _, c := range constructors {
		ctorName := names.NewName(c.Text, names.Constructor)
		if err := apply(r, qualifier, ctorName); err != nil {
			return err
		}
	}
	return nil
}
