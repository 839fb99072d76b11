package elmrefactor

import (
	"strings"

	"github.com/jwoudenberg/elm-pair/pkg/elmrefactor/lib"
	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// ImplicitElmImports is the IMPLICIT_ELM_IMPORTS set spec.md §4.6
// names: modules every Elm file can use unqualified without an
// explicit import, so typed_unimported_qualified_value must never
// offer to import them.
var ImplicitElmImports = map[string]bool{
	"Basics":   true,
	"Char":     true,
	"Cmd":      true,
	"List":     true,
	"Maybe":    true,
	"Platform": true,
	"Result":   true,
	"String":   true,
	"Sub":      true,
	"Tuple":    true,
}

// TypedUnimportedQualifiedValue implements typed_unimported_qualified_value
// (spec.md §4.6): for each candidate module name that is neither
// implicit nor already imported, and that the export oracle actually
// knows about, insert "import {name}\n" right after the module
// declaration (and any doc comment immediately following it).
func TypedUnimportedQualifiedValue(r *Refactor, oracle lib.ExportOracle, newImportNames []string) error {
	s := r.Snapshot()
	pos, ok := insertionPoint(s)
	if !ok {
		return nil
	}
	for _, name := range newImportNames {
		if ImplicitElmImports[name] {
			continue
		}
		if _, ok := oracle.Exports(name); !ok {
			continue
		}
		r.InsertAt(pos, "import "+name+"\n")
	}
	return nil
}

// insertionPoint finds the byte offset right after the module
// declaration line, skipping past an immediately following Elm doc
// comment ({-| ... -}) if there is one, matching spec.md's "after the
// module declaration and leading block comments".
func insertionPoint(s *elmtree.Snapshot) (int, bool) {
	_, node, ok := elmtree.ModuleDeclaration(s)
	if !ok {
		return 0, false
	}
	text := s.Bytes.String()
	pos := int(node.EndByte())
	if i := strings.IndexByte(text[pos:], '\n'); i != -1 {
		pos += i + 1
	}

	rest := strings.TrimLeft(text[pos:], "\n")
	skipped := len(text[pos:]) - len(rest)
	if strings.HasPrefix(rest, "{-|") {
		if end := strings.Index(rest, "-}"); end != -1 {
			docEnd := pos + skipped + end + len("-}")
			if i := strings.IndexByte(text[docEnd:], '\n'); i != -1 {
				return docEnd + i + 1, true
			}
			return docEnd, true
		}
	}
	return pos, true
}
