package editor

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/jwoudenberg/elm-pair/pkg/elmtree"
)

// RPCDriver implements Driver by calling out over a jsonrpc2.Conn to
// whatever editor plugin is on the other end. One RPCDriver serves one
// editor connection; the core engine holds one per connected editor.
type RPCDriver struct {
	Conn       *jsonrpc2.Conn
	EditorKind Kind
}

func (d *RPCDriver) Kind() Kind { return d.EditorKind }

type applyEditsParams struct {
	EditorID int       `json:"editorId"`
	BufferID int       `json:"bufferId"`
	Edits    []rpcEdit `json:"edits"`
}

func (d *RPCDriver) ApplyEdits(ctx context.Context, buffer elmtree.Buffer, edits []elmtree.Edit) error {
	params := applyEditsParams{
		EditorID: buffer.EditorID,
		BufferID: buffer.BufferID,
		Edits:    make([]rpcEdit, len(edits)),
	}
	for i, e := range edits {
		params.Edits[i] = rpcEdit{
			StartByte:   e.Range.Start,
			EndByte:     e.Range.End,
			Replacement: e.Replacement,
		}
	}
	return d.Conn.Notify(ctx, "applyEdits", params)
}

func (d *RPCDriver) OpenFiles(ctx context.Context, paths []string) error {
	return d.Conn.Notify(ctx, "openFiles", struct {
		Paths []string `json:"paths"`
	}{Paths: paths})
}

func (d *RPCDriver) ShowFile(ctx context.Context, path string) error {
	return d.Conn.Notify(ctx, "showFile", struct {
		Path string `json:"path"`
	}{Path: path})
}
