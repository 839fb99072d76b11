package elmtree

import (
	"strings"

	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// ChangeKindTag is the closed set of structural change kinds the
// classifier (C3, spec.md §4.3) recognizes. The zero value,
// NoRecognizedChange, is itself a valid, meaningful result: it is not
// an error (spec.md §7's UnknownChangeKind), just "nothing to pair".
type ChangeKindTag int

const (
	NoRecognizedChange ChangeKindTag = iota
	AddedModuleQualifier
	RemovedModuleQualifier
	ChangedAsClause
	AddedExposingList
	RemovedExposingList
	AddedConstructorsToExposingList
	RemovedConstructorsFromExposingList
	ChangedValuesInExposingList
	RenamedDefinition
	TypedUnimportedQualifiedValue
)

func (k ChangeKindTag) String() string {
	switch k {
	case NoRecognizedChange:
		return "NoRecognizedChange"
	case AddedModuleQualifier:
		return "AddedModuleQualifier"
	case RemovedModuleQualifier:
		return "RemovedModuleQualifier"
	case ChangedAsClause:
		return "ChangedAsClause"
	case AddedExposingList:
		return "AddedExposingList"
	case RemovedExposingList:
		return "RemovedExposingList"
	case AddedConstructorsToExposingList:
		return "AddedConstructorsToExposingList"
	case RemovedConstructorsFromExposingList:
		return "RemovedConstructorsFromExposingList"
	case ChangedValuesInExposingList:
		return "ChangedValuesInExposingList"
	case RenamedDefinition:
		return "RenamedDefinition"
	case TypedUnimportedQualifiedValue:
		return "TypedUnimportedQualifiedValue"
	default:
		return "ChangeKindTag(?)"
	}
}

// ChangeKind is the classifier's output: a tag plus the payload the
// matching refactor (pkg/elmrefactor) needs. Exactly one set of fields
// is populated, matching the tag; this is a closed Go analogue of the
// tagged-union ChangeKind spec.md §4.3 describes.
type ChangeKind struct {
	Tag ChangeKindTag

	// AddedModuleQualifier / RemovedModuleQualifier
	Qualified names.QualifiedName
	// RemovedModuleQualifier's "old qualifier" when it differs from
	// Qualified.Qualifier (kept equal in practice; named separately to
	// match spec.md's RemovedModuleQualifier(Name, old qualifier)).
	OldQualifier string

	// ChangedAsClause
	OldAlias, NewAlias string
	ImportName         string // the import statement's unaliased name
	EditedAtImport      bool   // true if the as-clause itself was edited, false if a use-site qualifier was

	// AddedExposingList / RemovedExposingList / ChangedValuesInExposingList
	ExposingImportName string

	// AddedConstructorsToExposingList / RemovedConstructorsFromExposingList
	ConstructorsImportName string
	ConstructorsTypeName   string

	// ChangedValuesInExposingList
	ExposingAdded, ExposingRemoved []names.Name

	// RenamedDefinition
	OldName, NewName names.Name
	DefinitionPos    int // byte offset, in new, of the renamed definition

	// TypedUnimportedQualifiedValue
	NewImportNames []string
}

// Classify compares old and new snapshots of the same buffer and
// returns the structural change kind the pair represents, per spec.md
// §4.3. Classify never errors; a pair it cannot recognize yields
// ChangeKind{Tag: NoRecognizedChange}.
func Classify(old, new *Snapshot) ChangeKind {
	if ck, ok := classifyExposingLists(old, new); ok {
		return ck
	}
	if ck, ok := classifyAsClauses(old, new); ok {
		return ck
	}
	if ck, ok := classifyQualifierChange(old, new); ok {
		return ck
	}
	if ck, ok := classifyQualifierAddedRemoved(old, new); ok {
		return ck
	}
	if ck, ok := classifyUnimportedQualifiedValue(old, new); ok {
		return ck
	}
	if ck, ok := classifyRename(old, new); ok {
		return ck
	}
	return ChangeKind{Tag: NoRecognizedChange}
}

func importByName(imports []Import, name string) (Import, bool) {
	for _, im := range imports {
		if im.UnaliasedName() == name {
			return im, true
		}
	}
	return Import{}, false
}

// classifyAsClauses detects a direct edit to an import's own as-clause
// text (scenarios S3/S4): the import's unaliased name is unchanged but
// its AliasedName() differs between old and new.
func classifyAsClauses(old, new *Snapshot) (ChangeKind, bool) {
	oldImports := Imports(old)
	newImports := Imports(new)
	for _, ni := range newImports {
		oi, ok := importByName(oldImports, ni.UnaliasedName())
		if !ok {
			continue
		}
		if oi.AliasedName() != ni.AliasedName() {
			return ChangeKind{
				Tag:            ChangedAsClause,
				OldAlias:       oi.AliasedName(),
				NewAlias:       ni.AliasedName(),
				ImportName:     ni.UnaliasedName(),
				EditedAtImport: true,
			}, true
		}
	}
	return ChangeKind{}, false
}

// classifyQualifierChange detects a use-site edit of a qualifier
// prefix that used to resolve to an existing import, without the
// import itself having been touched: e.g. `JD.string` retyped as
// `D.string` while `import Json.Decode as JD` is untouched.
func classifyQualifierChange(old, new *Snapshot) (ChangeKind, bool) {
	oldRefs := QualifiedValues(old)
	newRefs := QualifiedValues(new)
	oldQualifiers := map[string]bool{}
	for _, r := range oldRefs {
		oldQualifiers[r.Name.Qualifier] = true
	}
	newQualifiers := map[string]bool{}
	for _, r := range newRefs {
		newQualifiers[r.Name.Qualifier] = true
	}
	imports := Imports(new)
	for oldQ := range oldQualifiers {
		if newQualifiers[oldQ] {
			continue // still used somewhere; not a wholesale rename
		}
		im, ok := importByName(imports, oldQ)
		if !ok {
			// Maybe oldQ is itself an alias; look up by alias instead.
			im, ok = FindImportByAlias(old, oldQ)
			if !ok {
				continue
			}
		}
		for newQ := range newQualifiers {
			if oldQualifiers[newQ] {
				continue
			}
			if _, isKnownImport := importByName(imports, newQ); isKnownImport {
				continue
			}
			return ChangeKind{
				Tag:            ChangedAsClause,
				OldAlias:       oldQ,
				NewAlias:       newQ,
				ImportName:     im.UnaliasedName(),
				EditedAtImport: false,
			}, true
		}
	}
	return ChangeKind{}, false
}

// classifyQualifierAddedRemoved detects a name that was referred to
// unqualified in old and qualified in new (or vice versa), with the
// import itself untouched: `string` -> `JD.string`, or the reverse,
// where `Json.Decode as JD exposing (string)` doesn't change.
func classifyQualifierAddedRemoved(old, new *Snapshot) (ChangeKind, bool) {
	oldUnqualified := countUnqualifiedUses(old)
	newUnqualified := countUnqualifiedUses(new)
	oldQualified := countQualifiedUses(old)
	newQualified := countQualifiedUses(new)

	for text, oldN := range oldUnqualified {
		newN := newUnqualified[text]
		if newN >= oldN {
			continue
		}
		for qname, newQ := range newQualified {
			if qname.Name.Text != text {
				continue
			}
			oldQ := oldQualified[qname]
			if newQ > oldQ {
				return ChangeKind{Tag: AddedModuleQualifier, Qualified: qname}, true
			}
		}
	}

	for qname, oldQ := range oldQualified {
		newQ := newQualified[qname]
		if newQ >= oldQ {
			continue
		}
		newN := newUnqualified[qname.Name.Text]
		oldN := oldUnqualified[qname.Name.Text]
		if newN > oldN {
			return ChangeKind{
				Tag:          RemovedModuleQualifier,
				Qualified:    qname,
				OldQualifier: qname.Qualifier,
			}, true
		}
	}
	return ChangeKind{}, false
}

func countUnqualifiedUses(s *Snapshot) map[string]int {
	counts := map[string]int{}
	for _, o := range UnqualifiedValues(s) {
		if o.IsDefinition {
			continue
		}
		counts[o.Name.Text]++
	}
	return counts
}

func countQualifiedUses(s *Snapshot) map[names.QualifiedName]int {
	counts := map[names.QualifiedName]int{}
	for _, o := range QualifiedValues(s) {
		counts[o.Name]++
	}
	return counts
}

// classifyUnimportedQualifiedValue detects `Mod.thing` where Mod has
// no import statement in old (spec.md §4.3 bullet 6 / §9.6 typed
// unimported qualified value).
func classifyUnimportedQualifiedValue(old, new *Snapshot) (ChangeKind, bool) {
	oldImports := Imports(old)
	var newNames []string
	seen := map[string]bool{}
	for _, r := range QualifiedValues(new) {
		if !isValidModuleName(r.Name.Qualifier) {
			continue
		}
		if _, ok := importByName(oldImports, r.Name.Qualifier); ok {
			continue
		}
		if seen[r.Name.Qualifier] {
			continue
		}
		seen[r.Name.Qualifier] = true
		newNames = append(newNames, r.Name.Qualifier)
	}
	if len(newNames) == 0 {
		return ChangeKind{}, false
	}
	return ChangeKind{Tag: TypedUnimportedQualifiedValue, NewImportNames: newNames}, true
}

// isValidModuleName reports whether s lexes as a dot-separated run of
// capitalized segments, per spec.md §4.3's boundary condition for
// mid-identifier deletions: a partial prefix before the dot must still
// look like a legal module name for this classification to apply.
func isValidModuleName(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return false
		}
		if seg[0] < 'A' || seg[0] > 'Z' {
			return false
		}
	}
	return true
}

// classifyRename detects a bound definition whose identifier changed
// between old and new, at the same lexical position, with no other
// structural change nearby (spec.md's RenamedDefinition).
func classifyRename(old, new *Snapshot) (ChangeKind, bool) {
	oldDefs := NameDefinitions(old)
	newDefs := NameDefinitions(new)
	if len(oldDefs) != len(newDefs) {
		return ChangeKind{}, false
	}
	for i := range oldDefs {
		if oldDefs[i].Name.Equal(newDefs[i].Name) {
			continue
		}
		return ChangeKind{
			Tag:           RenamedDefinition,
			OldName:       oldDefs[i].Name,
			NewName:       newDefs[i].Name,
			DefinitionPos: int(newDefs[i].Node.StartByte()),
		}, true
	}
	return ChangeKind{}, false
}
