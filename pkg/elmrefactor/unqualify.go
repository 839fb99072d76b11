package elmrefactor

import (
	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor/lib"
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// Unqualify implements remove_module_qualifier_from_name (spec.md
// §4.6): every occurrence of qualifier.name in r.Snapshot() has its
// "qualifier." prefix dropped. Before dropping a given occurrence's
// prefix, it checks the free_names helper (pkg/elmrefactor/lib) at
// that occurrence's position; if a conflicting local binding is
// visible there, that binding (and every reference to it within its
// own scope) is renamed to a fresh, non-colliding name first, exactly
// as spec.md's "conflict-resolved-by-rename" branch describes. Since
// dropping a qualifier would otherwise leave a reference to a name
// nothing exposes -- the exact mirror image of Qualify's exposing-list
// cleanup, and required to keep scenario S2 (spec.md §4.8) compiling
// -- Unqualify also adds name to the qualifier's exposing list if it
// isn't already reachable unqualified from it.
func Unqualify(r *Refactor, qualifier string, name names.Name) error {
	s := r.Snapshot()
	for _, occ := range elmtree.QualifiedValues(s) {
		if occ.Name.Qualifier != qualifier || !occ.Name.Name.Equal(name) {
			continue
		}
		pos := int(occ.Node.StartByte())
		if !lib.IsFree(s, pos, name) {
			renameConflict(r, s, pos, name)
		}
		r.AddChange(elmtree.NodeRange(occ.Node), occ.Name.Name.Text)
	}
	if im, ok := elmtree.FindImportByAlias(s, qualifier); ok {
		addToExposingList(r, s, im, name)
	}
	return nil
}

// addToExposingList ensures name is reachable unqualified from im,
// inserting an exposing clause (or an entry within an existing one) if
// it isn't already. Constructor names are skipped: a constructor is
// exposed nested inside its type's own entry (`Type(Ctor)`), which
// AddedConstructorsToExposingList/classifyExposingListContents already
// own, not as a standalone list entry.
func addToExposingList(r *Refactor, s *elmtree.Snapshot, im elmtree.Import, name names.Name) {
	if name.Kind == names.Constructor {
		return
	}
	if !im.HasExposingList() {
		r.InsertAt(im.AliasedNameEndOrNameEnd(), " exposing ("+name.Text+")")
		return
	}
	for _, it := range elmtree.ExposedItems(s, im.ExposingNode) {
		if it.Open || it.Name.Text == name.Text {
			return
		}
	}
	r.InsertAt(int(im.ExposingNode.EndByte())-1, ", "+name.Text)
}

// renameConflict finds the local binding of name visible at pos and
// rewrites its definition, plus every reference within its scope, to
// a fresh name that does not collide with anything visible there.
func renameConflict(r *Refactor, s *elmtree.Snapshot, pos int, name names.Name) {
	scopes := elmtree.Scopes(s)
	sc := elmtree.ScopeAt(scopes, pos)
	for cur := sc; cur != nil; cur = cur.Parent {
		for _, b := range cur.Bindings {
			if !b.Name.Equal(name) {
				continue
			}
			fresh := lib.FreshNameFor(s, pos, name)
			RenameWithinScope(r, s, cur, name, fresh)
			return
		}
	}
}
