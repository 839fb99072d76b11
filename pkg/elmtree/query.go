package elmtree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// query wraps a compiled tree-sitter query together with a
// name->capture-index map resolved once at compile time; each maps a
// match's capture indexes back to names by scanning that map. This
// mirrors how
// goyang's ast.go resolves struct-field reflection once in initTypes
// and reuses the resolved function table on every BuildAST call.
type query struct {
	q        *sitter.Query
	captures map[string]uint32
}

func mustCompile(pattern string) *query {
	q, err := sitter.NewQuery([]byte(pattern), Language())
	if err != nil {
		panic("elmtree: invalid built-in query: " + err.Error() + "\n" + pattern)
	}
	captures := make(map[string]uint32, q.CaptureCount())
	for i := uint32(0); i < q.CaptureCount(); i++ {
		captures[q.CaptureNameForId(i)] = i
	}
	return &query{q: q, captures: captures}
}

// match is one query match, keyed by capture name rather than by the
// positional index tree-sitter itself returns matches with.
type match map[string]*sitter.Node

func (q *query) each(root *sitter.Node, fn func(m match)) {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.q, root)
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			return
		}
		mm := make(match, len(m.Captures))
		for _, c := range m.Captures {
			for name, idx := range q.captures {
				if c.Index == idx {
					mm[name] = c.Node
					break
				}
			}
		}
		fn(mm)
	}
}

// Queries are compiled once per process, at package init, exactly as
// goyang's ast.go builds its typeMap/nameMap once in an init function
// rather than re-deriving them per parse.
var (
	moduleDeclarationQuery = mustCompile(`
		(module_declaration
			name: (upper_case_qid) @name) @decl
	`)

	importsQuery = mustCompile(`
		(import_clause
			moduleName: (upper_case_qid) @name
			asClause: (as_clause name: (upper_case_identifier) @alias)?
			exposing: (exposing_list)? @exposing) @import
	`)

	qualifiedValuesQuery = mustCompile(`
		[
			(value_qid moduleName: (upper_case_qid) @qualifier name: (lower_case_identifier) @name) @ref
			(value_qid moduleName: (upper_case_qid) @qualifier name: (upper_case_identifier) @name) @ref
			(type_ref name: (upper_case_qid) @qualifier) @ref
		]
	`)

	unqualifiedValueRefsQuery = mustCompile(`
		[
			(value_expr (lower_case_identifier) @name) @ref
			(value_expr (upper_case_identifier) @name) @ref
		]
	`)

	definitionsQuery = mustCompile(`
		[
			(function_declaration_left (lower_case_identifier) @name) @def
			(lower_pattern) @name @def
		]
	`)

	moduleExposingQuery = mustCompile(`
		(module_declaration exposing: (exposing_list) @exposing)
	`)
)

// ModuleDeclaration returns the module's own declared name (the
// "module_declaration" query of spec.md §4.2), or ok=false if s has no
// module declaration (a parse error, or a fragment under test).
func ModuleDeclaration(s *Snapshot) (name string, node *sitter.Node, ok bool) {
	var found bool
	moduleDeclarationQuery.each(s.Tree.RootNode(), func(m match) {
		if found {
			return
		}
		found = true
		name = s.NodeText(m["name"])
		node = m["decl"]
	})
	return name, node, found
}

// ModuleExposing returns the module declaration's own exposing_list
// node, or nil if s has no module declaration or it exposes nothing
// (which the grammar disallows, but a mid-edit buffer may transiently
// have).
func ModuleExposing(s *Snapshot) *sitter.Node {
	var node *sitter.Node
	moduleExposingQuery.each(s.Tree.RootNode(), func(m match) {
		if node == nil {
			node = m["exposing"]
		}
	})
	return node
}

// Import is the read-only AST projection of one `import M [as A]
// [exposing (...)]` statement, as spec.md §3 defines it. An Import
// never owns text; its accessors slice straight into the Snapshot it
// was produced from.
type Import struct {
	snapshot      *Snapshot
	Node          *sitter.Node
	NameNode      *sitter.Node
	AliasNode     *sitter.Node // nil if there is no as-clause
	ExposingNode  *sitter.Node // nil if there is no exposing list
}

// UnaliasedName returns the module name as written after `import`.
func (im Import) UnaliasedName() string { return im.snapshot.NodeText(im.NameNode) }

// AliasedName returns the name used to qualify references to this
// import: the as-clause's alias if present, otherwise the unaliased
// module name.
func (im Import) AliasedName() string {
	if im.AliasNode != nil {
		return im.snapshot.NodeText(im.AliasNode)
	}
	return im.UnaliasedName()
}

// AsClauseRange returns the byte range spanning " as Alias" (from the
// end of the module name to the end of the alias), for refactors that
// need to delete or replace an import's as-clause wholesale. It panics
// if im has no as-clause; check AliasNode != nil first.
func (im Import) AsClauseRange() ByteRange {
	return ByteRange{Start: int(im.NameNode.EndByte()), End: int(im.AliasNode.EndByte())}
}

// AliasedNameEndOrNameEnd returns the byte offset right after the
// as-clause alias if one exists, otherwise right after the module
// name: the point an exposing list (or its leading space) starts.
func (im Import) AliasedNameEndOrNameEnd() int {
	if im.AliasNode != nil {
		return int(im.AliasNode.EndByte())
	}
	return int(im.NameNode.EndByte())
}

// InsertAsClausePos returns the byte offset immediately after the
// module name, where a new " as Alias" clause should be inserted for
// an import that doesn't have one yet.
func (im Import) InsertAsClausePos() int { return int(im.NameNode.EndByte()) }

// HasExposingList reports whether the import has an exposing(...) list
// at all, distinct from having an empty one (Elm's grammar never
// allows an empty exposing list, so "has a list" and "exposes
// something" coincide here).
func (im Import) HasExposingList() bool { return im.ExposingNode != nil }

// Imports runs the "imports" query (spec.md §4.2) over s, returning
// every import statement in source order.
func Imports(s *Snapshot) []Import {
	var out []Import
	importsQuery.each(s.Tree.RootNode(), func(m match) {
		out = append(out, Import{
			snapshot:     s,
			Node:         m["import"],
			NameNode:     m["name"],
			AliasNode:    m["alias"],
			ExposingNode: m["exposing"],
		})
	})
	return out
}

// FindImport returns the import of moduleName in s, or ok=false if
// none exists.
func FindImport(s *Snapshot, moduleName string) (Import, bool) {
	for _, im := range Imports(s) {
		if im.UnaliasedName() == moduleName {
			return im, true
		}
	}
	return Import{}, false
}

// FindImportByAlias returns the import whose current AliasedName()
// equals alias.
func FindImportByAlias(s *Snapshot, alias string) (Import, bool) {
	for _, im := range Imports(s) {
		if im.AliasedName() == alias {
			return im, true
		}
	}
	return Import{}, false
}

// QualifiedOccurrence is one `Mod.name` or `Alias.name` reference found
// by the "qualified_values" query.
type QualifiedOccurrence struct {
	Node          *sitter.Node
	QualifierNode *sitter.Node
	NameNode      *sitter.Node
	Name          names.QualifiedName
}

// QualifiedValues runs the "qualified_values" query (spec.md §4.2).
func QualifiedValues(s *Snapshot) []QualifiedOccurrence {
	var out []QualifiedOccurrence
	qualifiedValuesQuery.each(s.Tree.RootNode(), func(m match) {
		qualifier := s.NodeText(m["qualifier"])
		nameNode := m["name"]
		var kind names.Kind
		if nameNode == nil {
			// The type_ref alternative captures only @qualifier; the
			// type name itself is the qualifier node's last segment.
			nameNode = m["qualifier"]
			kind = names.Type
		} else if text := s.NodeText(nameNode); text != "" && text[0] >= 'A' && text[0] <= 'Z' {
			kind = names.Constructor
		} else {
			kind = names.Value
		}
		out = append(out, QualifiedOccurrence{
			Node:          m["ref"],
			QualifierNode: m["qualifier"],
			NameNode:      nameNode,
			Name: names.QualifiedName{
				Qualifier: qualifier,
				Name:      names.NewName(s.NodeText(nameNode), kind),
			},
		})
	})
	return out
}

// UnqualifiedOccurrence is one bare identifier use or definition found
// by the "unqualified_values"/"name_definitions" queries.
type UnqualifiedOccurrence struct {
	Node       *sitter.Node
	Name       names.Name
	IsDefinition bool
}

// UnqualifiedValues runs the "unqualified_values" query (spec.md
// §4.2): every bare (unqualified) identifier use, tagged with whether
// it is simultaneously a binding definition.
func UnqualifiedValues(s *Snapshot) []UnqualifiedOccurrence {
	defs := definitionNodeSet(s)
	var out []UnqualifiedOccurrence
	unqualifiedValueRefsQuery.each(s.Tree.RootNode(), func(m match) {
		node := m["name"]
		text := s.NodeText(node)
		kind := names.Value
		if text != "" && text[0] >= 'A' && text[0] <= 'Z' {
			kind = names.Constructor
		}
		out = append(out, UnqualifiedOccurrence{
			Node:         node,
			Name:         names.NewName(text, kind),
			IsDefinition: defs[node.StartByte()],
		})
	})
	return out
}

// NameDefinitions runs the "name_definitions" query (spec.md §4.2):
// every identifier introduced as a binding (function/let/case/pattern
// argument), in source order.
func NameDefinitions(s *Snapshot) []UnqualifiedOccurrence {
	var out []UnqualifiedOccurrence
	definitionsQuery.each(s.Tree.RootNode(), func(m match) {
		node := m["name"]
		if node == nil {
			return
		}
		out = append(out, UnqualifiedOccurrence{
			Node:         node,
			Name:         names.NewName(s.NodeText(node), names.Value),
			IsDefinition: true,
		})
	})
	return out
}

func definitionNodeSet(s *Snapshot) map[uint32]bool {
	set := map[uint32]bool{}
	for _, d := range NameDefinitions(s) {
		set[d.Node.StartByte()] = true
	}
	return set
}
