// Package editor implements the editor-facing side of spec.md §6: a
// Driver capability interface editors implement (or a JSON-RPC proxy
// to one implements on their behalf), and a Listener that decodes the
// three events an editor plugin reports (new buffer, modified buffer,
// license key entry) into the core engine's own types.
package editor

import (
	"context"

	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// Kind identifies which editor a Driver is talking to, since a handful
// of behaviors (how a file is revealed, whether edits need an extra
// "did you mean to do this" confirmation) are editor-specific.
type Kind int

const (
	KindUnknown Kind = iota
	KindNeovim
	KindVSCode
)

func (k Kind) String() string {
	switch k {
	case KindNeovim:
		return "neovim"
	case KindVSCode:
		return "vscode"
	default:
		return "unknown"
	}
}

// Driver is the capability surface an editor integration exposes to
// the core engine (spec.md §6): apply a computed refactor, open files
// the project discovery process found, and reveal a file path to the
// user (e.g. to prompt for a license key). Implementations live behind
// a JSON-RPC connection (RPCDriver) in production and behind a plain
// in-memory fake (FakeDriver) in tests.
type Driver interface {
	Kind() Kind
	ApplyEdits(ctx context.Context, buffer elmtree.Buffer, edits []elmtree.Edit) error
	OpenFiles(ctx context.Context, paths []string) error
	ShowFile(ctx context.Context, path string) error
}
