// Package lib holds small, stateless helpers shared by several
// refactor functions in pkg/elmrefactor: a fresh-name search (grounded
// on the original implementation's free_names.rs) and an exported
// constructors lookup (grounded on constructors_of_exports.rs). Both
// are pure functions: the fresh-name search over an *elmtree.Snapshot,
// the constructors lookup over an ExportOracle. They are kept out of
// pkg/elmrefactor itself
// so individual refactor files can depend on them without depending on
// each other.
package lib

import (
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// FreshNameFor returns a name usable at byte offset pos in s without
// colliding with any binding visible there: candidate itself if it is
// already free, otherwise candidate with an increasing numeric suffix.
// This backs the unqualify refactor's conflict-resolution step
// (spec.md §4.6): removing a qualifier can expose a name to a local
// binding of the same text, and free_names.rs's solution -- append a
// number until the collision disappears -- is the one this mirrors.
func FreshNameFor(s *elmtree.Snapshot, pos int, candidate names.Name) names.Name {
	scopes := elmtree.Scopes(s)
	return elmtree.FreshName(scopes, pos, candidate)
}

// IsFree reports whether candidate has no visible binding at pos in s.
func IsFree(s *elmtree.Snapshot, pos int, candidate names.Name) bool {
	scopes := elmtree.Scopes(s)
	return elmtree.FreeIn(scopes, pos, candidate, nil)
}
