// Package names defines the small, closed set of value types the
// refactor engine passes between its components: the Name/QualifiedName
// pair a tree query yields and the ExportedName/ExposedConstructors
// variants the
// export oracle (pkg/knowledgebase) answers with. None of these types
// own source text; they are read-only projections of a
// pkg/elmtree.Snapshot and live only as long as the snapshot that
// produced them.
package names

import "fmt"

// Kind distinguishes the three namespaces Elm keeps distinct: a value
// (function, let-binding, operator), a type, and a data constructor.
// Two Names with equal text but different Kind are different names —
// a module can expose both a type and a constructor sharing one
// identifier, as record-type aliases do.
type Kind int

const (
	// Value is a lower-case identifier naming a function, a
	// let/case binding, or (as a special, non-qualifiable case) an
	// operator such as (++).
	Value Kind = iota
	// Type is an upper-case identifier naming a type or type alias.
	Type
	// Constructor is an upper-case identifier naming a data
	// constructor of a custom type, or the implicit constructor of a
	// record type alias.
	Constructor
)

// String renders k the way diagnostics and test names expect it.
func (k Kind) String() string {
	switch k {
	case Value:
		return "Value"
	case Type:
		return "Type"
	case Constructor:
		return "Constructor"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Name is an identifier as it appears in source, tagged with the
// namespace it belongs to. Equality is on (Text, Kind): a Value named
// "foo" and a Type named "foo" are distinct Names.
type Name struct {
	Text string
	Kind Kind
	// Qualifiable is false for operators: `(++)` can appear in an
	// exposing list and be renamed, but `Mod.++` is not valid Elm, so
	// qualify/unqualify refactors must treat operators specially
	// (see Qualifiable).
	Qualifiable bool
}

// NewName builds a Name. Operators (identified by their leading
// non-letter rune) are marked non-qualifiable; every other identifier
// is qualifiable by default.
func NewName(text string, kind Kind) Name {
	return Name{Text: text, Kind: kind, Qualifiable: !isOperatorText(text)}
}

func isOperatorText(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '+', '-', '*', '/', '<', '>', '=', '&', '|', ':', '.', '^', '%', '!':
		return true
	}
	return false
}

// Equal reports whether n and o name the same thing.
func (n Name) Equal(o Name) bool { return n.Text == o.Text && n.Kind == o.Kind }

// String renders n for diagnostics.
func (n Name) String() string { return n.Text }

// QualifiedName is a reference of the form `Qualifier.name`, where
// Qualifier is the dot-joined module-alias path (`Json.Decode`, or
// `D` if the import carries an `as` clause) and Name is the bare
// identifier after the final dot.
type QualifiedName struct {
	Qualifier string
	Name      Name
}

// String renders qn the way it appears in source: "Qualifier.name".
func (qn QualifiedName) String() string {
	return qn.Qualifier + "." + qn.Name.Text
}

// ExposedConstructors describes what an exposing-list entry for a type
// actually exposes: either the single implicit constructor of a record
// type alias, or the full constructor list of a custom type.
type ExposedConstructors struct {
	// FromTypeAlias holds the record type alias's own name, used as
	// the one implicit constructor, when Kind == FromTypeAliasKind.
	FromTypeAlias Name
	// FromCustomType holds the named constructors of a custom type,
	// used when Kind == FromCustomTypeKind.
	FromCustomType []Name
	Kind          ExposedConstructorsKind
}

// ExposedConstructorsKind tags which variant an ExposedConstructors
// value holds.
type ExposedConstructorsKind int

const (
	FromTypeAliasKind ExposedConstructorsKind = iota
	FromCustomTypeKind
)

// Constructors returns the flat list of constructor Names ec exposes,
// regardless of which variant it is.
func (ec ExposedConstructors) Constructors() []Name {
	switch ec.Kind {
	case FromTypeAliasKind:
		return []Name{ec.FromTypeAlias}
	case FromCustomTypeKind:
		return ec.FromCustomType
	default:
		return nil
	}
}

// ExportedNameKind tags which variant an ExportedName value holds.
type ExportedNameKind int

const (
	ExportedValue ExportedNameKind = iota
	ExportedRecordTypeAlias
	ExportedType
)

// ExportedName is one entry the export oracle (pkg/knowledgebase)
// yields for a module: a plain value, a record type alias (whose name
// doubles as its one constructor), or a type together with its data
// constructors.
type ExportedName struct {
	Kind ExportedNameKind
	Name Name
	// Constructors is populated only when Kind == ExportedType.
	Constructors []Name
}
