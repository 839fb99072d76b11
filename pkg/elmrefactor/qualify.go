package elmrefactor

import (
	"fmt"

	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// Qualify implements add_module_qualifier_to_name (spec.md §4.6): every
// remaining unqualified occurrence of name in r.Snapshot() is prefixed
// with "qualifier.", and if the import that exposes name from
// qualifier no longer has any unqualified use to justify keeping name
// in its exposing list, name (and, if it was the last entry, the whole
// list) is dropped from it.
func Qualify(r *Refactor, qualifier string, name names.Name) error {
	s := r.Snapshot()
	im, ok := elmtree.FindImportByAlias(s, qualifier)
	if !ok {
		return fmt.Errorf("elmrefactor: qualify: no import aliased %q", qualifier)
	}

	for _, occ := range elmtree.UnqualifiedValues(s) {
		if occ.IsDefinition || !occ.Name.Equal(name) {
			continue
		}
		r.AddChange(elmtree.NodeRange(occ.Node), qualifier+"."+occ.Name.Text)
	}

	// Every occurrence still unqualified just got qualified above, and
	// the occurrence that triggered this refactor was already written
	// qualified by the user, so by now no unqualified use of name
	// remains anywhere: the exposing-list entry that used to justify
	// importing it unqualified is always stale here.
	if im.HasExposingList() {
		removeFromExposingList(r, s, im, name.Text)
	}
	return nil
}

// removeFromExposingList drops the entry named entryName from im's
// exposing list, removing the whole list if it was the only entry.
func removeFromExposingList(r *Refactor, s *elmtree.Snapshot, im elmtree.Import, entryName string) {
	items := elmtree.ExposedItems(s, im.ExposingNode)
	item, ok := elmtree.ExposedItemByName(items, entryName)
	if !ok {
		return
	}
	if len(items) == 1 {
		r.Remove(elmtree.ByteRange{
			Start: im.AliasedNameEndOrNameEnd(),
			End:   int(im.ExposingNode.EndByte()),
		})
		return
	}
	start, end := item.Range.Start, rangeEndIncludingComma(s, items, item)
	if end == item.Range.End {
		// item is the last entry: consume the separator before it.
		for _, other := range items {
			if other.Range.End < item.Range.Start {
				start = other.Range.End
			}
		}
	}
	r.AddChange(elmtree.ByteRange{Start: start, End: end}, "")
}

// rangeEndIncludingComma extends item's range to also consume a
// trailing ", " when another entry follows it; for the list's last
// entry it returns item's own end, and removeFromExposingList consumes
// the preceding separator instead, so removing one entry from a
// multi-entry list doesn't leave a dangling comma behind.
func rangeEndIncludingComma(s *elmtree.Snapshot, items []elmtree.ExposedItem, item elmtree.ExposedItem) int {
	for _, other := range items {
		if other.Range.Start > item.Range.End {
			// There is a following entry; consume up through its start.
			return other.Range.Start
		}
	}
	return item.Range.End
}
