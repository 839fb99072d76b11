package lib

import "github.com/jwoudenberg/elm-pair/pkg/names"

// ExportOracle answers what a module exports, the single cross-module
// fact several refactors need and no single buffer's own snapshot can
// tell them: pkg/knowledgebase.KnowledgeBase is the concrete
// implementation (spec.md §3, §6).
// Declaring the interface here rather than importing knowledgebase
// keeps pkg/elmrefactor free of a dependency on project/compiler
// plumbing it otherwise has no use for.
type ExportOracle interface {
	Exports(moduleName string) ([]names.ExportedName, bool)
}

// ConstructorsOfExports returns the constructors moduleName exposes
// for typeName: either the literal constructor list of a custom type,
// or the implicit single constructor of a record type alias sharing
// typeName's name. It reports ok=false if the module or type is
// unknown to oracle. This is the helper constructors_of_exports.rs
// provides the add/remove-constructors refactors (spec.md §4.6,
// §9.5): those refactors only ever need "what constructors does this
// type have right now", never the full export list.
func ConstructorsOfExports(oracle ExportOracle, moduleName, typeName string) ([]names.Name, bool) {
	exported, ok := oracle.Exports(moduleName)
	if !ok {
		return nil, false
	}
	for _, e := range exported {
		if e.Name.Text != typeName {
			continue
		}
		switch e.Kind {
		case names.ExportedType:
			return e.Constructors, true
		case names.ExportedRecordTypeAlias:
			return []names.Name{e.Name}, true
		default:
			return nil, false
		}
	}
	return nil, false
}
