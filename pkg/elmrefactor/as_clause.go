package elmrefactor

import (
	"fmt"

	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// ChangedAsClause implements changed_as_clause (spec.md §4.6): every
// OldAlias. prefix elsewhere in the buffer is rewritten to NewAlias.;
// if newAlias already equals the import's own unaliased name, the
// as-clause becomes redundant and is deleted outright.
func ChangedAsClause(r *Refactor, importName, oldAlias, newAlias string) error {
	s := r.Snapshot()
	im, ok := elmtree.FindImport(s, importName)
	if !ok {
		return fmt.Errorf("elmrefactor: changed_as_clause: import %q not found", importName)
	}
	if newAlias == im.UnaliasedName() && im.AliasNode != nil {
		r.Remove(im.AsClauseRange())
	}
	rewriteQualifierPrefix(r, s, oldAlias, newAlias)
	return nil
}

// ChangedModuleQualifier implements changed_module_qualifier (spec.md
// §4.6): the user retyped a qualifier at a use site without touching
// the import. Locate the import whose current aliased name equals
// oldAlias, give it (or update) an as-clause naming newAlias, then
// rewrite every other oldAlias. use site the same way
// ChangedAsClause does.
func ChangedModuleQualifier(r *Refactor, importName, oldAlias, newAlias string) error {
	s := r.Snapshot()
	im, ok := elmtree.FindImport(s, importName)
	if !ok {
		return fmt.Errorf("elmrefactor: changed_module_qualifier: import %q not found", importName)
	}
	switch {
	case im.AliasNode != nil && newAlias == im.UnaliasedName():
		r.Remove(im.AsClauseRange())
	case im.AliasNode != nil:
		r.AddChange(elmtree.NodeRange(im.AliasNode), newAlias)
	case newAlias != im.UnaliasedName():
		r.InsertAt(im.InsertAsClausePos(), " as "+newAlias)
	}
	rewriteQualifierPrefix(r, s, oldAlias, newAlias)
	return nil
}

// rewriteQualifierPrefix rewrites every `oldAlias.` qualified
// occurrence's qualifier node to newAlias, except the one use site
// that prompted the classification (already reads newAlias, so
// QualifiedValues no longer reports it under oldAlias).
func rewriteQualifierPrefix(r *Refactor, s *elmtree.Snapshot, oldAlias, newAlias string) {
	for _, occ := range elmtree.QualifiedValues(s) {
		if occ.Name.Qualifier != oldAlias {
			continue
		}
		r.AddChange(elmtree.NodeRange(occ.QualifierNode), newAlias)
	}
}
