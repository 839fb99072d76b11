package elmrefactor

import (
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// Rename implements renamed_definition / changed_name (spec.md §4.6):
// the definition itself has already been edited by the user (that's
// how the classifier recognized the change); this rewrites every
// other reference to oldName within its own lexical scope to newName.
func Rename(r *Refactor, defPos int, oldName, newName names.Name) error {
	s := r.Snapshot()
	scopes := elmtree.Scopes(s)
	sc := elmtree.ScopeAt(scopes, defPos)
	if sc == nil {
		return nil
	}
	RenameWithinScope(r, s, sc, oldName, newName)
	return nil
}

// RenameWithinScope rewrites every occurrence of oldName visible from
// sc (sc itself and every descendant scope that doesn't shadow
// oldName with its own binding) to newName. It skips the definition
// occurrence itself when it falls inside the same scope the rename
// originates from, since that node was already edited to read newName
// by the time the classifier ran.
func RenameWithinScope(r *Refactor, s *elmtree.Snapshot, sc *elmtree.Scope, oldName, newName names.Name) {
	allScopes := elmtree.Scopes(s)
	for _, occ := range elmtree.UnqualifiedValues(s) {
		if !occ.Name.Equal(oldName) {
			continue
		}
		pos := int(occ.Node.StartByte())
		occScope := elmtree.ScopeAt(allScopes, pos)
		if !scopeDescendsFrom(occScope, sc) {
			continue
		}
		if occ.IsDefinition && occ.Name.Equal(newName) {
			// Already renamed by the user's own edit.
			continue
		}
		r.AddChange(elmtree.NodeRange(occ.Node), newName.Text)
	}
}

func scopeDescendsFrom(sc, ancestor *elmtree.Scope) bool {
	for cur := sc; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}
