package elmtree

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// ExposedItem is one entry of an exposing(...) list: a bare value
// (`foo`), a type or type alias (`Foo`), or a custom type together
// with the constructors it exposes (`Foo(..)` or `Foo(A, B)`). Range
// spans exactly the entry's own text, not including any separating
// comma, so refactors can cut one entry out of a list by removing
// Range and (if needed) an adjacent comma themselves.
type ExposedItem struct {
	Name         names.Name
	Constructors []string // constructor names, only set when Open is false
	Open         bool     // true for the `(..)` form
	Range        ByteRange
}

// parseExposingList extracts the items an exposing_list node names.
// tree-sitter-elm's own node types for this (exposed_value,
// exposed_type, exposed_union_constructors) would let us avoid a
// hand-rolled scanner, but walking the list textually keeps this
// classifier-support helper decoupled from grammar node names we
// haven't otherwise needed to depend on, at the cost of assuming Elm's
// fairly rigid exposing-list syntax (comma-separated, parens only
// nest one level deep for constructors).
func parseExposingList(s *Snapshot, node *sitter.Node) []ExposedItem {
	if node == nil {
		return nil
	}
	base := int(node.StartByte())
	text := s.NodeText(node)
	open := strings.Index(text, "(")
	closeIdx := strings.LastIndex(text, ")")
	if open == -1 || closeIdx == -1 || closeIdx <= open {
		return nil
	}
	inner := text[open+1 : closeIdx]
	innerBase := base + open + 1

	var items []ExposedItem
	depth := 0
	start := 0
	flush := func(end int) {
		raw := inner[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return
		}
		leading := strings.Index(raw, trimmed)
		entryStart := innerBase + start + leading
		items = append(items, parseExposedEntry(trimmed, entryStart))
	}
	for i, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(inner))
	return items
}

func parseExposedEntry(entry string, entryStart int) ExposedItem {
	rng := ByteRange{Start: entryStart, End: entryStart + len(entry)}
	open := strings.Index(entry, "(")
	if open == -1 {
		name := strings.TrimSpace(entry)
		kind := names.Value
		if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
			kind = names.Type
		}
		return ExposedItem{Name: names.NewName(name, kind), Range: rng}
	}
	name := strings.TrimSpace(entry[:open])
	if name == "" {
		// A bare operator entry like "(>>>)": Elm always writes
		// operators parenthesized in an exposing list, but the
		// operator's Name (matching how the query layer names a use
		// site) excludes the parens.
		op := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(entry), "("), ")")
		return ExposedItem{Name: names.NewName(op, names.Value), Range: rng}
	}
	inner := strings.TrimSuffix(strings.TrimSpace(entry[open+1:]), ")")
	item := ExposedItem{Name: names.NewName(name, names.Type), Range: rng}
	if strings.TrimSpace(inner) == ".." {
		item.Open = true
		return item
	}
	for _, c := range strings.Split(inner, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			item.Constructors = append(item.Constructors, c)
		}
	}
	return item
}

// ExposedItems is the exported form of parseExposingList, for
// pkg/elmrefactor's exposing-list edit refactors.
func ExposedItems(s *Snapshot, exposingNode *sitter.Node) []ExposedItem {
	return parseExposingList(s, exposingNode)
}

// ExposedItemByName finds the entry named name among items.
func ExposedItemByName(items []ExposedItem, name string) (ExposedItem, bool) {
	return exposedItemByName(items, name)
}

func exposedItemByName(items []ExposedItem, name string) (ExposedItem, bool) {
	for _, it := range items {
		if it.Name.Text == name {
			return it, true
		}
	}
	return ExposedItem{}, false
}

// classifyExposingLists detects the five exposing-list change kinds
// spec.md §4.3 lists: a list appearing, disappearing, a custom type's
// constructors being opened/closed up, or the set of plain exposed
// values/types changing.
func classifyExposingLists(old, new *Snapshot) (ChangeKind, bool) {
	oldImports := Imports(old)
	newImports := Imports(new)
	for _, ni := range newImports {
		oi, ok := importByName(oldImports, ni.UnaliasedName())
		if !ok {
			continue
		}
		switch {
		case !oi.HasExposingList() && ni.HasExposingList():
			return ChangeKind{Tag: AddedExposingList, ExposingImportName: ni.UnaliasedName()}, true
		case oi.HasExposingList() && !ni.HasExposingList():
			var removed []names.Name
			for _, it := range parseExposingList(old, oi.ExposingNode) {
				removed = append(removed, it.Name)
			}
			return ChangeKind{
				Tag:                 RemovedExposingList,
				ExposingImportName:  ni.UnaliasedName(),
				ExposingRemoved:     removed,
			}, true
		case oi.HasExposingList() && ni.HasExposingList():
			if ck, ok := classifyExposingListContents(old, new, oi, ni); ok {
				return ck, true
			}
		}
	}
	return ChangeKind{}, false
}

func classifyExposingListContents(old, new *Snapshot, oi, ni Import) (ChangeKind, bool) {
	oldItems := parseExposingList(old, oi.ExposingNode)
	newItems := parseExposingList(new, ni.ExposingNode)

	for _, newIt := range newItems {
		oldIt, ok := exposedItemByName(oldItems, newIt.Name.Text)
		if !ok || newIt.Name.Kind != names.Type {
			continue
		}
		oldSet := stringSet(oldIt.Constructors)
		newSet := stringSet(newIt.Constructors)
		if !oldIt.Open && newIt.Open {
			return ChangeKind{
				Tag:                    AddedConstructorsToExposingList,
				ConstructorsImportName: ni.UnaliasedName(),
				ConstructorsTypeName:   newIt.Name.Text,
			}, true
		}
		if oldIt.Open && !newIt.Open {
			return ChangeKind{
				Tag:                    RemovedConstructorsFromExposingList,
				ConstructorsImportName: ni.UnaliasedName(),
				ConstructorsTypeName:   newIt.Name.Text,
			}, true
		}
		if len(newSet) > len(oldSet) {
			return ChangeKind{
				Tag:                    AddedConstructorsToExposingList,
				ConstructorsImportName: ni.UnaliasedName(),
				ConstructorsTypeName:   newIt.Name.Text,
			}, true
		}
		if len(newSet) < len(oldSet) {
			return ChangeKind{
				Tag:                    RemovedConstructorsFromExposingList,
				ConstructorsImportName: ni.UnaliasedName(),
				ConstructorsTypeName:   newIt.Name.Text,
			}, true
		}
	}

	var added, removed []names.Name
	for _, newIt := range newItems {
		if _, ok := exposedItemByName(oldItems, newIt.Name.Text); !ok {
			added = append(added, newIt.Name)
		}
	}
	for _, oldIt := range oldItems {
		if _, ok := exposedItemByName(newItems, oldIt.Name.Text); !ok {
			removed = append(removed, oldIt.Name)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return ChangeKind{}, false
	}
	return ChangeKind{
		Tag:                ChangedValuesInExposingList,
		ExposingImportName: ni.UnaliasedName(),
		ExposingAdded:      added,
		ExposingRemoved:    removed,
	}, true
}

func stringSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
