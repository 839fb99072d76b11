package elmtree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jwoudenberg/elm-pair/pkg/names"
)

// TypeDeclaration is one top-level `type T = ...` or `type alias T =
// ...` declaration, with the constructors it introduces (for a custom
// type). Constructors is left empty for type aliases; IsRecord marks an
// alias of a record type.
type TypeDeclaration struct {
	Name         names.Name
	Constructors []names.Name
	IsTypeAlias  bool
	IsRecord     bool // only meaningful when IsTypeAlias
}

// TypeDeclarations walks s's top-level declarations directly (rather
// than through a compiled query) since collecting a variable number of
// union_variant children per type_declaration needs repetition a
// single tree-sitter capture can't express without losing all but the
// last match; a plain child walk handles that naturally.
func TypeDeclarations(s *Snapshot) []TypeDeclaration {
	var out []TypeDeclaration
	root := s.Tree.RootNode()
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		n := root.Child(i)
		if n == nil {
			continue
		}
		switch n.Type() {
		case "type_declaration":
			out = append(out, typeDeclarationFrom(s, n))
		case "type_alias_declaration":
			out = append(out, typeAliasDeclarationFrom(s, n))
		}
	}
	return out
}

func typeDeclarationFrom(s *Snapshot, n *sitter.Node) TypeDeclaration {
	decl := TypeDeclaration{}
	nameNode := n.ChildByFieldName("name")
	if nameNode != nil {
		decl.Name = names.NewName(s.NodeText(nameNode), names.Type)
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || child.Type() != "union_variant" {
			continue
		}
		ctorNameNode := child.ChildByFieldName("name")
		if ctorNameNode != nil {
			decl.Constructors = append(decl.Constructors, names.NewName(s.NodeText(ctorNameNode), names.Constructor))
		}
	}
	return decl
}

func typeAliasDeclarationFrom(s *Snapshot, n *sitter.Node) TypeDeclaration {
	decl := TypeDeclaration{IsTypeAlias: true}
	nameNode := n.ChildByFieldName("name")
	if nameNode != nil {
		decl.Name = names.NewName(s.NodeText(nameNode), names.Type)
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil && child.Type() == "record_type" {
			decl.IsRecord = true
		}
	}
	return decl
}

// ModuleExports computes the ExportedName list a Snapshot's own
// module declaration publishes: the export oracle's view of a buffer
// the editor is currently holding open, before any compiler-backed
// interface cache (pkg/knowledgebase) has a chance to catch up.
func ModuleExports(s *Snapshot) []names.ExportedName {
	exposing := ModuleExposing(s)
	if exposing == nil {
		return nil
	}
	items := ExposedItems(s, exposing)
	open := false
	exposed := map[string]ExposedItem{}
	for _, it := range items {
		if it.Name.Text == ".." {
			open = true
			continue
		}
		exposed[it.Name.Text] = it
	}

	types := TypeDeclarations(s)

	var out []names.ExportedName
	for _, d := range NameDefinitions(s) {
		// NameDefinitions includes every binding, including local ones;
		// only top-level function definitions matter for exports, and
		// those are exactly the ones found directly under the file's
		// own scope. Filtering precisely would need scope information;
		// as an approximation, only consider names the exposing list
		// (or its open form) actually names.
		_, inList := exposed[d.Name.Text]
		if !open && !inList {
			continue
		}
		out = append(out, names.ExportedName{Kind: names.ExportedValue, Name: d.Name})
	}

	for _, t := range types {
		item, inList := exposed[t.Name.Text]
		if !open && !inList {
			continue
		}
		switch {
		case t.IsTypeAlias && t.IsRecord:
			out = append(out, names.ExportedName{Kind: names.ExportedRecordTypeAlias, Name: t.Name})
		case t.IsTypeAlias:
			out = append(out, names.ExportedName{Kind: names.ExportedType, Name: t.Name})
		default:
			ctors := t.Constructors
			if !open && (!inList || !item.Open) {
				ctors = nil
			}
			out = append(out, names.ExportedName{Kind: names.ExportedType, Name: t.Name, Constructors: ctors})
		}
	}
	return out
}
