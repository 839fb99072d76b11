package elmtree

import (
	sitter "github.com/smacker/go-tree-sitter"

	elm "github.com/elm-tooling/tree-sitter-elm/bindings/go"
)

// language is the compiled tree-sitter grammar for Elm, wrapped the
// same way smacker/go-tree-sitter's own bundled per-language packages
// wrap their grammars: the grammar repository ships a cgo `Language()`
// binding and we hand its pointer to sitter.NewLanguage once at init.
var language = sitter.NewLanguage(elm.Language())

// Language returns the shared Elm grammar. Every parser created by this
// package uses the same *sitter.Language value, matching tree-sitter's
// expectation that a Language is immutable and safe to share across
// parsers and queries.
func Language() *sitter.Language { return language }
